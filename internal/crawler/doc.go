// Package crawler implements the single-page crawl engine: robots.txt
// policy checks, the retrying page fetcher, and the per-target orchestrator
// that turns one input URL into exactly one result record.
package crawler
