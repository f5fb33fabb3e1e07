// Package analytics derives dashboard tables from a heritage dataset.
//
// Every function here is pure: it reads the tables it is given, never
// mutates them, and returns freshly allocated results ordered
// deterministically so identical input yields identical output.
package analytics
