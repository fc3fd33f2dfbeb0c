package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/vcsync/pkg/object"
)

// CreateTag creates a lightweight tag: a ref under refs/tags/ pointing
// directly at the named object.
func (r *Repo) CreateTag(name, target string) (object.Hash, error) {
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("create tag: %w", err)
	}
	h, err := r.Find(target, "", false)
	if err != nil {
		return "", fmt.Errorf("create tag: %w", err)
	}
	if err := r.CreateRef("refs/tags/"+name, h); err != nil {
		return "", fmt.Errorf("create tag: %w", err)
	}
	return h, nil
}

// CreateAnnotatedTag stores a tag object carrying the tagger and message,
// and points refs/tags/<name> at it.
func (r *Repo) CreateAnnotatedTag(name, target, tagger, message string) (object.Hash, error) {
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	targetHash, err := r.Find(target, "", false)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	targetObj, err := r.Store.Read(targetHash)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if strings.TrimSpace(tagger) == "" {
		tagger = "unknown"
	}

	kv := object.NewKVLM()
	kv.Set([]byte("object"), []byte(targetHash))
	kv.Set([]byte("type"), []byte(targetObj.Type))
	kv.Set([]byte("tag"), []byte(name))
	kv.Set([]byte("tagger"), []byte(tagger))
	kv.SetMessage([]byte(message))

	tagHash, err := r.Store.WriteTag(&object.Tag{Fields: kv})
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if err := r.CreateRef("refs/tags/"+name, tagHash); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	return tagHash, nil
}

func validateTagName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("tag name %q contains whitespace", name)
	}
	if strings.HasPrefix(name, "-") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}
