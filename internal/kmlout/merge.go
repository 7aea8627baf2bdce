package kmlout

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
)

// documentRe captures the payload of a KML <Document> element.
var documentRe = regexp.MustCompile(`(?s)<Document[^>]*>(.*)</Document>`)

// MergeDocuments splices the second document's <Document> payload
// into the first, keeping the first document's outer wrapper. The
// contents are concatenated as-is; overlapping geometry is not
// reconciled. If either input has no <Document> element the first
// document is returned unchanged.
func MergeDocuments(first, second []byte) []byte {
	firstLoc := documentRe.FindSubmatchIndex(first)
	secondMatch := documentRe.FindSubmatch(second)
	if firstLoc == nil || secondMatch == nil {
		return first
	}

	payloadEnd := firstLoc[3]
	merged := make([]byte, 0, len(first)+len(secondMatch[1]))
	merged = append(merged, first[:payloadEnd]...)
	merged = append(merged, secondMatch[1]...)
	merged = append(merged, first[payloadEnd:]...)
	return merged
}

// ReadKMZDocument extracts the doc.kml payload from a KMZ archive.
func ReadKMZDocument(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open kmz: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "doc.kml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open doc.kml: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("kmz %s: no doc.kml entry", path)
}
