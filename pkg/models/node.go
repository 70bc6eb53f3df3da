package models

import (
	"path/filepath"
	"strconv"
)

// NodeKind distinguishes the entries of a rendered result tree
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeFolder
	NodeFile
)

func (k NodeKind) String() string {
	switch k {
	case NodeGroup:
		return "group"
	case NodeFolder:
		return "folder"
	case NodeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is one entry of a result tree. Path is the group ID for NodeGroup.
type Node struct {
	Kind     NodeKind
	Path     string
	Label    string
	Size     int64
	Best     bool
	Tagged   bool
	Children []Node
}

// FileTree builds the group/file tree of a file scan report
func FileTree(report *FileScanReport) []Node {
	nodes := make([]Node, 0, len(report.Groups))
	for _, g := range report.Groups {
		folder := Node{
			Kind:  NodeFolder,
			Path:  g.Folder,
			Label: baseName(g.Folder) + " (" + itoa(len(g.Files)) + " files)",
		}
		for _, f := range g.Files {
			folder.Size += f.Size
			folder.Children = append(folder.Children, Node{
				Kind:  NodeFile,
				Path:  f.FullPath,
				Label: f.Filename,
				Size:  f.Size,
				Best:  f.Best,
			})
		}
		nodes = append(nodes, folder)
	}
	return nodes
}

// FolderTree builds the group/folder tree of a folder scan report
func FolderTree(report *FolderScanReport) []Node {
	nodes := make([]Node, 0, len(report.Groups))
	for _, g := range report.Groups {
		group := Node{
			Kind:  NodeGroup,
			Path:  g.ID,
			Label: g.DisplayName(),
		}
		for _, f := range g.Folders {
			group.Size += f.Stats.TotalSize
			group.Children = append(group.Children, Node{
				Kind:   NodeFolder,
				Path:   f.Path,
				Label:  baseName(f.Path),
				Size:   f.Stats.TotalSize,
				Best:   f.Best,
				Tagged: f.Tagged,
			})
		}
		nodes = append(nodes, group)
	}
	return nodes
}

// CollectPaths returns the paths of every node of the given kind, depth first
func CollectPaths(nodes []Node, kind NodeKind) []string {
	var paths []string
	for _, n := range nodes {
		if n.Kind == kind {
			paths = append(paths, n.Path)
		}
		paths = append(paths, CollectPaths(n.Children, kind)...)
	}
	return paths
}

func baseName(path string) string {
	return filepath.Base(path)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
