package trending

import "github.com/nao1215/trendwatch/internal/model"

// StaticFallback returns the fixed example dataset served when a fetch
// fails and the cache slot is empty. It keeps downstream consumers working
// with plausible, well-known repositories instead of an empty response.
//
// The entries are intentionally stable: downstream consumers rely on the
// ordering and the entry names staying fixed.
func StaticFallback() []model.Project {
	return []model.Project{
		{
			Name:        "microsoft/vscode",
			URL:         "https://github.com/microsoft/vscode",
			Description: "Visual Studio Code - open source code editor",
			Stars:       150000,
			Forks:       25000,
			Language:    "TypeScript",
			UpdatedAt:   UpdatedTodaySentinel,
			Rank:        1,
		},
		{
			Name:        "facebook/react",
			URL:         "https://github.com/facebook/react",
			Description: "A JavaScript library for building user interfaces",
			Stars:       200000,
			Forks:       42000,
			Language:    "JavaScript",
			UpdatedAt:   UpdatedTodaySentinel,
			Rank:        2,
		},
		{
			Name:        "tensorflow/tensorflow",
			URL:         "https://github.com/tensorflow/tensorflow",
			Description: "An open source machine learning framework",
			Stars:       180000,
			Forks:       70000,
			Language:    "C++",
			UpdatedAt:   UpdatedTodaySentinel,
			Rank:        3,
		},
		{
			Name:        "torvalds/linux",
			URL:         "https://github.com/torvalds/linux",
			Description: "Linux kernel source tree",
			Stars:       160000,
			Forks:       50000,
			Language:    "C",
			UpdatedAt:   UpdatedTodaySentinel,
			Rank:        4,
		},
		{
			Name:        "apple/swift",
			URL:         "https://github.com/apple/swift",
			Description: "The Swift programming language",
			Stars:       65000,
			Forks:       10000,
			Language:    "C++",
			UpdatedAt:   UpdatedTodaySentinel,
			Rank:        5,
		},
	}
}
