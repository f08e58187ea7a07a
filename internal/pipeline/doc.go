// Package pipeline runs a scan as a fixed sequence of steps.
//
// A run is linear: validate the start URL, scan the start page, extract
// its internal links, filter them down to sub-pages, then scan each
// sub-page in turn. Each step is a Step that receives the shared
// model.ScanReport and adds to it. The pipeline stops at the first
// failing step, so an invalid start URL or an unreachable start page
// ends the run early.
//
// PageScanner holds the per-page logic shared by the start page and
// the sub-pages.
package pipeline
