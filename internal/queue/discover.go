package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adverant/nexus/nid-worker/internal/processor"
)

const (
	frontSuffix = "_front"
	backSuffix  = "_back"
)

type cardFiles struct {
	front, back string
}

// DiscoverJobs pairs <id>_front.<ext> and <id>_back.<ext> files in dir
// into jobs sorted by id. Files with other extensions are ignored; ids
// missing one side are returned in unpaired.
func DiscoverJobs(dir string, extensions []string) (jobs []Job, unpaired []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read batch directory: %w", err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.TrimPrefix(strings.ToLower(ext), ".")] = true
	}

	cards := make(map[string]*cardFiles)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !allowed[strings.TrimPrefix(strings.ToLower(ext), ".")] {
			continue
		}
		stem := strings.TrimSuffix(name, ext)

		var id string
		var front bool
		switch {
		case strings.HasSuffix(stem, frontSuffix):
			id, front = strings.TrimSuffix(stem, frontSuffix), true
		case strings.HasSuffix(stem, backSuffix):
			id = strings.TrimSuffix(stem, backSuffix)
		default:
			continue
		}

		c, ok := cards[id]
		if !ok {
			c = &cardFiles{}
			cards[id] = c
		}
		if front {
			c.front = name
		} else {
			c.back = name
		}
	}

	ids := make([]string, 0, len(cards))
	for id := range cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := cards[id]
		if c.front == "" || c.back == "" {
			unpaired = append(unpaired, id)
			continue
		}

		front, err := readImage(dir, c.front)
		if err != nil {
			return nil, nil, err
		}
		back, err := readImage(dir, c.back)
		if err != nil {
			return nil, nil, err
		}
		jobs = append(jobs, Job{ID: id, Front: front, Back: back})
	}

	return jobs, unpaired, nil
}

// ReadImage loads one image file from disk.
func ReadImage(path string) (processor.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return processor.Image{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return processor.Image{Filename: filepath.Base(path), Data: data}, nil
}

func readImage(dir, name string) (processor.Image, error) {
	return ReadImage(filepath.Join(dir, name))
}
