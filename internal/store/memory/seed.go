package memory

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/store"
)

// Load reads a YAML or JSON seed file and returns a store holding its records.
// The file has one list per collection; every document goes through the marketplace decoders.
func Load(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading seed file %q: %w", path, err)
	}

	s := New()
	ctx := context.Background()

	err := eachDocument(v, store.Users, func(doc marketplace.Document) error {
		u, err := marketplace.DecodeUser(doc)
		if err != nil {
			return err
		}
		s.PutUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachDocument(v, store.Jobs, func(doc marketplace.Document) error {
		j, err := marketplace.DecodeJob(doc)
		if err != nil {
			return err
		}
		s.PutJob(j)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachDocument(v, store.JobSeekerPreferences, func(doc marketplace.Document) error {
		p, err := marketplace.DecodeSeekerPreferences(doc)
		if err != nil {
			return err
		}
		return s.UpsertSeekerPreferences(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	err = eachDocument(v, store.StartupJobPreferences, func(doc marketplace.Document) error {
		p, err := marketplace.DecodeJobPreferences(doc)
		if err != nil {
			return err
		}
		return s.UpsertJobPreferences(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func eachDocument(v *viper.Viper, collection string, fn func(marketplace.Document) error) error {
	raw := v.Get(collection)
	if raw == nil {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("seed %s: expected a list, got %T", collection, raw)
	}

	for i, item := range items {
		doc, err := toDocument(item)
		if err != nil {
			return fmt.Errorf("seed %s[%d]: %w", collection, i, err)
		}
		if err := fn(doc); err != nil {
			return fmt.Errorf("seed %s[%d]: %w", collection, i, err)
		}
	}
	return nil
}

func toDocument(item any) (marketplace.Document, error) {
	switch doc := item.(type) {
	case map[string]any:
		return doc, nil
	case map[any]any:
		out := make(marketplace.Document, len(doc))
		for k, v := range doc {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a document, got %T", item)
	}
}
