// Package model defines shared data structures for the collector service.
package model

// RawPost is the ingress contract: one extracted social post exactly as the
// collector collaborator handed it over. Every field is optional, but at
// least one of Text, PermalinkURL or PostID must be present for
// deduplication to be meaningful — a post with none of them is processed
// every time it is seen.
type RawPost struct {
	Text             string `json:"text,omitempty"`
	AuthorName       string `json:"authorName,omitempty"`
	AuthorTitle      string `json:"authorTitle,omitempty"`
	AuthorProfileURL string `json:"authorProfileUrl,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	CompanyURL       string `json:"companyUrl,omitempty"`
	DateText         string `json:"dateText,omitempty"`
	PermalinkURL     string `json:"permalinkUrl,omitempty"`
	PostID           string `json:"postId,omitempty"`
	Language         string `json:"language,omitempty"` // declared language code, e.g. "fr"
	Keyword          string `json:"keyword,omitempty"`  // search keyword that surfaced the post
}

// HasIdentity reports whether the post carries at least one field usable for
// deduplication.
func (p RawPost) HasIdentity() bool {
	return p.Text != "" || p.PermalinkURL != "" || p.PostID != ""
}
