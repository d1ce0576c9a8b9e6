// Package webcollage crawls the web from a set of seed pages and streams the
// images it finds to a display surface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, prometheus/).
// The crawl engine itself lives in crawl/.
package webcollage
