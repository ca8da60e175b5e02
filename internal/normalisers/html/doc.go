// Package html provides a Normaliser for HTML pages, such as SharePoint
// site pages exported as .aspx or .html files.
package html
