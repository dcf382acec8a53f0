// Package presentation turns a computed dashboard into display models shared
// by the HTML page and the terminal summary. Nothing here mutates the
// dashboard it is given.
package presentation
