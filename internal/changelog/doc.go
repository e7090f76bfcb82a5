// Package changelog reads, checks, edits and re-emits CHANGELOG.md files
// written in the Keep a Changelog convention (https://keepachangelog.com).
//
// A file is parsed line by line into a Document: an optional title, the
// version sections in file order and the trailing compare links, each bound
// to the section whose version it names. The Validator walks a Document and
// reports rule violations through a Sink without failing. Release promotes
// the Unreleased section to a dated version, and Render writes the Document
// back in a canonical, idempotent form.
package changelog
