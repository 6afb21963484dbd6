package marketplace

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Document is a loosely typed record as it comes out of a document store or a seed file.
type Document = map[string]any

type record interface {
	Normalize()
	Validate() error
}

// decode is the only place where loose documents become typed records.
// Unknown keys (such as Mongo's _id) are ignored; numbers and booleans are weakly coerced.
func decode[T any, P interface {
	*T
	record
}](doc Document) (*T, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	P(&out).Normalize()
	if err := P(&out).Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

func DecodeUser(doc Document) (*User, error) {
	return decode[User](doc)
}

func DecodeJob(doc Document) (*Job, error) {
	return decode[Job](doc)
}

func DecodeSeekerPreferences(doc Document) (*JobSeekerPreferences, error) {
	return decode[JobSeekerPreferences](doc)
}

func DecodeJobPreferences(doc Document) (*StartupJobPreferences, error) {
	return decode[StartupJobPreferences](doc)
}
