// Package lorekeep serves reference text from wiki-style sources to an
// assistant. It searches Lexicanum and Fandom, ranks rule sections from
// Wahapedia pages, and keeps responses in a local expiring cache so repeated
// questions do not hit the upstream sites.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, mediawiki/).
package lorekeep
