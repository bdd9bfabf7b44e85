package config

import (
	"slices"

	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/structure"
)

func preset(kind structure.Kind, op, input string, params map[string]string) *Config {
	cfg := DefaultConfig()
	cfg.Kind = kind
	cfg.Operation = op
	cfg.Input = input
	if params != nil {
		cfg.Params = params
	}
	return cfg
}

func graphPreset(op string, nodes, extra int, params map[string]string) *Config {
	cfg := preset(structure.KindGraph, op, "", params)
	cfg.Random = random.DefaultOptions()
	cfg.Random.GraphNodes = nodes
	cfg.Random.ExtraEdges = extra
	return cfg
}

var Presets = map[structure.Kind]map[string]*Config{
	structure.KindArray: {
		"reversed":   preset(structure.KindArray, "insertion_sort", "9, 8, 7, 6, 5, 4, 3, 2, 1", nil),
		"few-unique": preset(structure.KindArray, "quick_sort", "3, 1, 3, 2, 1, 3, 2, 1", nil),
		"classic":    preset(structure.KindArray, "merge_sort", "38, 27, 43, 3, 9, 82, 10", nil),
		"binary":     preset(structure.KindArray, "binary_search", "2, 5, 8, 12, 16, 23, 38, 56, 72, 91", map[string]string{"value": "23"}),
		"window":     preset(structure.KindArray, "sliding_window", "2, 1, 5, 1, 3, 2", map[string]string{"window": "3"}),
	},
	structure.KindStack: {
		"push": preset(structure.KindStack, "push", "4, 8, 15", map[string]string{"value": "16"}),
	},
	structure.KindQueue: {
		"dequeue": preset(structure.KindQueue, "dequeue", "4, 8, 15, 16", nil),
	},
	structure.KindLinkedList: {
		"reverse": preset(structure.KindLinkedList, "reverse", "1, 2, 3, 4, 5", nil),
		"insert":  preset(structure.KindLinkedList, "insert", "10, 20, 40", map[string]string{"value": "30", "index": "2"}),
	},
	structure.KindBinaryTree: {
		"inorder":    preset(structure.KindBinaryTree, "inorder", "50, 30, 70, 20, 40, 60, 80", nil),
		"levelorder": preset(structure.KindBinaryTree, "levelorder", "50, 30, 70, 20, 40, 60, 80", nil),
	},
	structure.KindHashTable: {
		"collisions": preset(structure.KindHashTable, "search", "3, 10, 17, 24, 5", map[string]string{"value": "24"}),
	},
	structure.KindGraph: {
		"bfs":      graphPreset("bfs", 7, 3, map[string]string{"start": "0"}),
		"dijkstra": graphPreset("dijkstra", 8, 4, map[string]string{"start": "0", "target": "7"}),
		"astar":    graphPreset("astar", 10, 5, map[string]string{"start": "0", "target": "5"}),
	},
}

func GetPreset(kind structure.Kind, name string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns preset names for kind in sorted order.
func ListPresets(kind structure.Kind) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
