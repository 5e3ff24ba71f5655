package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
)

// fillRequired returns a draft with every required field populated with a
// value that passes coercion.
func fillRequired(d *Descriptor) Draft {
	draft := NewDraft(d)
	for _, f := range d.Fields {
		if !f.Required {
			continue
		}
		switch f.Kind {
		case Integer:
			draft[f.Name] = "34"
		case Rating:
			draft[f.Name] = "5"
		case Choice:
			draft[f.Name] = f.Options[0]
		default:
			draft[f.Name] = "value"
		}
	}
	return draft
}

func TestCompose_MissingRequiredField_EveryDescriptor(t *testing.T) {
	for _, desc := range []*Descriptor{Testimonials(), SuccessStories(), Videos()} {
		for _, f := range desc.Fields {
			if !f.Required {
				continue
			}
			t.Run(desc.Collection+"/"+f.Name, func(t *testing.T) {
				draft := fillRequired(desc)
				draft[f.Name] = ""

				_, err := desc.Compose(draft, nil, "")
				require.ErrorIs(t, err, common.ErrIncompleteDraft)

				var incomplete *IncompleteDraftError
				require.True(t, errors.As(err, &incomplete))
				assert.Equal(t, []string{f.Name}, incomplete.Missing)
			})
		}
	}
}

func TestCompose_VideoWithoutCategory(t *testing.T) {
	desc := Videos()
	draft := fillRequired(desc)
	draft["category"] = ""

	_, err := desc.Compose(draft, nil, "")
	var incomplete *IncompleteDraftError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{"category"}, incomplete.Missing)
}

func TestCompose_Coercions(t *testing.T) {
	desc := Testimonials()
	draft := fillRequired(desc)
	draft["age"] = "34"
	draft["rating"] = "5"

	rec, err := desc.Compose(draft, nil, "")
	require.NoError(t, err)

	assert.Equal(t, 34, rec["age"])
	assert.Equal(t, 5, rec["rating"])
}

func TestCompose_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "age not a number", field: "age", value: "abc"},
		{name: "rating out of bounds", field: "rating", value: "9"},
		{name: "rating not a number", field: "rating", value: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := Testimonials()
			draft := fillRequired(desc)
			draft[tt.field] = tt.value

			_, err := desc.Compose(draft, nil, "")
			require.ErrorIs(t, err, common.ErrIncompleteDraft)

			var incomplete *IncompleteDraftError
			require.True(t, errors.As(err, &incomplete))
			assert.Contains(t, incomplete.Invalid, tt.field)
		})
	}
}

func TestCompose_UnknownCategoryRejected(t *testing.T) {
	desc := Videos()
	draft := fillRequired(desc)
	draft["category"] = "Cooking"

	_, err := desc.Compose(draft, nil, "")
	var incomplete *IncompleteDraftError
	require.True(t, errors.As(err, &incomplete))
	assert.Contains(t, incomplete.Invalid, "category")
}

func TestCompose_SequentialID(t *testing.T) {
	desc := Testimonials()
	existing := []Record{{"id": float64(1)}, {"id": float64(2)}, {"id": float64(5)}}

	rec, err := desc.Compose(fillRequired(desc), existing, "")
	require.NoError(t, err)
	assert.Equal(t, int64(6), rec["id"])

	rec, err = desc.Compose(fillRequired(desc), nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec["id"])
}

func TestCompose_TimestampID(t *testing.T) {
	origNow := nowFn
	defer func() { nowFn = origNow }()
	nowFn = func() time.Time { return time.UnixMilli(1700000000000) }

	desc := SuccessStories()
	rec, err := desc.Compose(fillRequired(desc), nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), rec["id"])
}

func TestCompose_ServerAssignedOmitsID(t *testing.T) {
	desc := Responses()

	rec, err := desc.Compose(fillRequired(desc), nil, "")
	require.NoError(t, err)

	_, ok := rec["id"]
	assert.False(t, ok)
}

func TestCompose_CompositeID(t *testing.T) {
	origNow, origRand := nowFn, randSuffix
	defer func() { nowFn, randSuffix = origNow, origRand }()
	nowFn = func() time.Time { return time.UnixMilli(1700000000000) }
	randSuffix = func() string { return "abc123xyz" }

	desc := Videos()
	rec, err := desc.Compose(fillRequired(desc), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "video_1700000000000_abc123xyz", rec["id"])
}

func TestCompose_EditPreservesID(t *testing.T) {
	desc := Testimonials()

	rec, err := desc.Compose(fillRequired(desc), nil, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec["id"])

	rec, err = Videos().Compose(fillRequired(Videos()), nil, "video_1_x")
	require.NoError(t, err)
	assert.Equal(t, "video_1_x", rec["id"])
}

func TestCompose_OptionalDefault(t *testing.T) {
	desc := Videos()
	draft := fillRequired(desc)
	draft["views"] = ""

	rec, err := desc.Compose(draft, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 0, rec["views"])
}
