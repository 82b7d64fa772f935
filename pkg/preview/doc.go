// Package preview renders designs to standalone HTML pages so designers can
// check layout and grouping outside the editor. Templates are pongo2 files
// (embedded defaults, overridable through an fs.FS) and styling comes from an
// optional go-theme selection whose tokens are exposed as CSS variables.
package preview
