package extractor

// Tables holds every keyword list the extractor consults. The heuristics are
// data, not control flow: swapping a table localizes or extends detection
// without touching the extraction logic. Zero-value fields fall back to the
// compiled-in defaults.
type Tables struct {
	// FreeMailDomains are consumer mail providers; addresses there are
	// rejected in favor of business-owned domains.
	FreeMailDomains []string
	// BotEmailMarkers reject machine mailboxes anywhere in the address.
	BotEmailMarkers []string
	// PriorityLocalParts raise the score of business-facing mailboxes.
	PriorityLocalParts []string
	// FormKeywords match inquiry/contact semantics in anchor text, hrefs,
	// and form actions. Japanese keywords are matched verbatim.
	FormKeywords []string
	// TitleSeparators cut taglines off page titles; the entity name is the
	// segment before the first separator.
	TitleSeparators []string
	// BoilerplateTokens are marketing fragments stripped from titles.
	BoilerplateTokens []string
	// Industries is an ordered coarse taxonomy; the first category with a
	// keyword hit wins.
	Industries []IndustryCategory
}

// IndustryCategory couples a stable category name with its match keywords.
type IndustryCategory struct {
	Name     string
	Keywords []string
}

// DefaultTables returns the built-in heuristic tables covering English and
// Japanese pages.
func DefaultTables() Tables {
	return Tables{
		FreeMailDomains: []string{
			"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
			"aol.com", "mail.com", "protonmail.com", "icloud.com",
			"qq.com", "sina.com", "gmail.jp", "yahoo.co.jp",
		},
		BotEmailMarkers: []string{
			"noreply", "no-reply",
		},
		PriorityLocalParts: []string{
			"contact", "info", "inquiry", "business", "support",
			"sales", "hello", "team",
		},
		FormKeywords: []string{
			"お問い合わせ", "お問合せ", "問い合わせ", "ご相談", "相談",
			"資料請求", "コンタクト", "お申し込み", "フォーム",
			"contact", "inquiry", "consultation", "support", "form", "request",
		},
		TitleSeparators: []string{
			"｜", "|", "：", " - ", " – ", " — ", "«", "»",
		},
		BoilerplateTokens: []string{
			"公式サイト", "公式ホームページ", "オフィシャルサイト",
			"ホームページ", "トップページ", "ホーム",
			"Official Site", "Official Website", "Official",
			"Home", "TOP", "トップ",
		},
		Industries: []IndustryCategory{
			{Name: "technology", Keywords: []string{
				"software", "technology", "tech", "developer", "saas", "cloud",
				"artificial intelligence", "machine learning", "digital",
				"情報技術", "ソフトウェア", "テクノロジー", "システム開発",
				"クラウド", "人工知能", "システムインテグレーション", "アプリ開発",
				"プログラミング", "デジタル",
			}},
			{Name: "finance", Keywords: []string{
				"finance", "financial", "banking", "insurance", "investment",
				"securities", "fintech", "asset management",
				"金融", "銀行", "保険", "証券", "投資", "資産運用",
				"信用金庫", "ファイナンス",
			}},
			{Name: "retail", Keywords: []string{
				"retail", "shop", "store", "ecommerce", "e-commerce",
				"shopping", "wholesale",
				"小売", "ショップ", "店舗", "ECサイト", "通販",
				"ネットショップ", "百貨店", "卸売",
			}},
			{Name: "healthcare", Keywords: []string{
				"healthcare", "medical", "hospital", "clinic", "pharmaceutical",
				"dental", "biotech", "wellness",
				"医療", "病院", "クリニック", "ヘルスケア", "製薬",
				"医療機器", "診療所", "薬局", "歯科",
			}},
			{Name: "education", Keywords: []string{
				"education", "school", "university", "college", "training",
				"academy", "elearning",
				"教育", "学校", "大学", "学習", "スクール", "塾",
				"予備校", "専門学校",
			}},
			{Name: "manufacturing", Keywords: []string{
				"manufacturing", "manufacturer", "factory", "industrial",
				"fabrication", "machinery",
				"製造", "工場", "生産", "工業", "メーカー", "製造業",
			}},
			{Name: "construction", Keywords: []string{
				"construction", "builder", "civil engineering", "contractor",
				"infrastructure",
				"建設", "建築", "工事", "土木", "施工管理",
			}},
			{Name: "real_estate", Keywords: []string{
				"real estate", "property", "realty", "housing", "rental",
				"不動産", "住宅", "マンション", "賃貸", "宅地建物取引",
			}},
			{Name: "food_beverage", Keywords: []string{
				"restaurant", "dining", "cafe", "catering", "bakery",
				"food service", "beverage",
				"食品", "レストラン", "飲食", "外食", "飲料",
				"フードサービス", "カフェ", "ベーカリー",
			}},
		},
	}
}

// merged fills zero-value fields with defaults so partial overrides from
// configuration keep the remaining tables intact.
func (t Tables) merged() Tables {
	def := DefaultTables()
	if len(t.FreeMailDomains) == 0 {
		t.FreeMailDomains = def.FreeMailDomains
	}
	if len(t.BotEmailMarkers) == 0 {
		t.BotEmailMarkers = def.BotEmailMarkers
	}
	if len(t.PriorityLocalParts) == 0 {
		t.PriorityLocalParts = def.PriorityLocalParts
	}
	if len(t.FormKeywords) == 0 {
		t.FormKeywords = def.FormKeywords
	}
	if len(t.TitleSeparators) == 0 {
		t.TitleSeparators = def.TitleSeparators
	}
	if len(t.BoilerplateTokens) == 0 {
		t.BoilerplateTokens = def.BoilerplateTokens
	}
	if len(t.Industries) == 0 {
		t.Industries = def.Industries
	}
	return t
}
