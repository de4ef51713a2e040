// Package analysis post-processes exported datasets: it classifies rows
// by language, splits a table into per-language files, and renders bar
// charts for language and tweet-volume distributions.
package analysis
