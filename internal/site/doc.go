// Package site builds the standalone widget page.
//
// A page is described in CUE: the widget settings, a style description and
// the footer credit. The embedded default is the stock California page.
// Build renders the stylesheet, injects the widget settings into the
// embedded browser script, minifies it and assembles a single HTML document.
package site
