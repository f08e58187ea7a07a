// Package main provides the entry point for the pagescout CLI.
//
// pagescout scans a web page and a filtered set of its same-site sub-pages
// for keyword phrases and links to PDF documents.
//
// Usage:
//
//	pagescout https://www.example.gov.in/
//	pagescout scan --markdown -o report.md https://www.example.gov.in/
//
// See --help for all available options.
package main

func main() {
	Execute()
}
