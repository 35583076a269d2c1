package output

import (
	"strings"

	"github.com/disiqueira/gotree/v3"

	"treepaths/internal/model"
)

// VisualFileTree renders reconstructed paths as a tree, which makes depth
// mistakes in a listing easy to spot.
type VisualFileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
	sep  string
}

func NewVisualFileTree(rootLabel string, sep model.Separator) VisualFileTree {
	return VisualFileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree), sep: string(sep)}
}

func (t VisualFileTree) getDir(segments []string) (dir gotree.Tree) {
	if len(segments) == 0 {
		return t.tree
	}
	key := strings.Join(segments, t.sep)
	dir = t.dirs[key]
	if dir == nil {
		parent := t.getDir(segments[:len(segments)-1])
		dir = parent.Add(label(segments[len(segments)-1]))
		t.dirs[key] = dir
	}
	return
}

// InsertPath adds path, with the prefix stripped, creating parents as needed.
func (t VisualFileTree) InsertPath(path, prefix string) {
	rel := strings.TrimPrefix(path, prefix)
	rel = strings.TrimPrefix(rel, t.sep)
	if rel == "" {
		return
	}
	t.getDir(strings.Split(rel, t.sep))
}

func (t VisualFileTree) Render() string {
	return t.tree.Print()
}

// RenderTree is a shortcut that renders all paths under cfg.Prefix.
func RenderTree(paths []string, cfg model.Config) string {
	root := cfg.Prefix
	if root == "" {
		root = string(cfg.Separator)
	}
	t := NewVisualFileTree(root, cfg.Separator)
	for _, p := range paths {
		t.InsertPath(p, cfg.Prefix)
	}
	return t.Render()
}

// Empty segments come from forward depth jumps and from lines holding only
// ignored characters.
func label(segment string) string {
	if segment == "" {
		return "(empty)"
	}
	return segment
}
