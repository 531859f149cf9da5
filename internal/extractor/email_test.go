package extractor

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	require.NoError(t, err)
	return doc
}

func TestEmailPrefersBusinessMailbox(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<p>noreply@example.com</p>
		<p>randomperson1234567890@example.com</p>
		<p>sales@example.com</p>
	</body></html>`)

	got := New(Tables{}).extractEmail(doc, "https://example.com/")

	require.Equal(t, "sales@example.com", got)
}

func TestEmailMailtoOutranksBodyText(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<p>info@example.com</p>
		<a href="mailto:desk@example.com?subject=hi">contact us</a>
	</body></html>`)

	got := New(Tables{}).extractEmail(doc, "https://example.com/")

	require.Equal(t, "desk@example.com", got, "mailto weight beats a plain-text priority mailbox")
}

func TestEmailRejectsFreeMailAndBots(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="mailto:someone@gmail.com">mail</a>
		<a href="mailto:no-reply@example.com">mail</a>
		<p>owner@yahoo.co.jp</p>
	</body></html>`)

	got := New(Tables{}).extractEmail(doc, "https://example.com/")

	require.Empty(t, got)
}

func TestEmailFromDataAttribute(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<div data-email="Contact@Example.co.jp"></div>
	</body></html>`)

	got := New(Tables{}).extractEmail(doc, "https://example.co.jp/")

	require.Equal(t, "contact@example.co.jp", got, "addresses are lowercased")
}

func TestEmailIgnoresScriptContent(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<script>var fallback = "tracker@analytics-vendor.example";</script>
		<p>info@example.co.jp</p>
	</body></html>`)

	got := New(Tables{}).extractEmail(doc, "https://example.co.jp/")

	require.Equal(t, "info@example.co.jp", got)
}

func TestEmailDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<p>zz@example.com</p>
		<p>aa@example.com</p>
	</body></html>`)

	x := New(Tables{})
	for i := 0; i < 5; i++ {
		require.Equal(t, "aa@example.com", x.extractEmail(doc, "https://example.com/"))
	}
}

func TestNormalizeEmailTrimsPunctuation(t *testing.T) {
	t.Parallel()

	require.Equal(t, "info@example.com", normalizeEmail("(info@example.com)."))
	require.Equal(t, "info@example.com", normalizeEmail("  INFO@EXAMPLE.COM  "))
	require.Empty(t, normalizeEmail("not-an-email"))
}
