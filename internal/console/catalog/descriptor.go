// Package catalog describes the entity types managed by the console: their
// field shapes, coercion rules, id-generation strategies, and asset-backed
// fields. Descriptors are static configuration; one pipeline instance is
// parameterized by one descriptor.
package catalog

// FieldKind selects the coercion applied to a field's raw input value.
type FieldKind int

const (
	// Text fields are carried through as-is.
	Text FieldKind = iota
	// Integer fields must parse with strconv.Atoi.
	Integer
	// Rating fields must parse to an integer in [1,5].
	Rating
	// Choice fields must match one of the descriptor's Options.
	Choice
)

// FieldSpec describes a single field of an entity type.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	// Default is substituted for an empty optional value before coercion.
	Default string
	// Options constrains Choice fields.
	Options []string
	// Multiline fields collect free-form input line by line until an empty
	// line, instead of a single prompt.
	Multiline bool
}

// IDStrategy selects how an id is assigned to a new record.
type IDStrategy int

const (
	// ServerAssigned omits the id field; the record API assigns one.
	ServerAssigned IDStrategy = iota
	// Sequential derives max(existing ids)+1, or 1 for an empty collection.
	Sequential
	// Timestamp stamps the creation time in unix milliseconds as the id.
	Timestamp
	// Composite builds "{prefix}_{unixMillis}_{shortRandom}".
	Composite
)

// FileConstraints bound what a staged upload candidate may look like.
type FileConstraints struct {
	AllowedMIMETypes []string
	MaxSizeBytes     int64
}

// Allows reports whether mimeType is in the allowed set.
func (c FileConstraints) Allows(mimeType string) bool {
	for _, t := range c.AllowedMIMETypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// AssetField names a field whose value is a URL produced either by direct
// entry or by uploading a binary file subject to Constraints.
type AssetField struct {
	Name        string
	Constraints FileConstraints
}

// Descriptor is the static per-screen configuration for one entity type.
type Descriptor struct {
	// Name is the human-facing singular name used in prompts and logs.
	Name string
	// Collection is the record API collection path segment.
	Collection string
	// Namespace prefixes generated storage keys for uploaded assets.
	Namespace string
	// IDStrategy selects id assignment for new records; IDPrefix applies
	// to Composite ids only.
	IDStrategy IDStrategy
	IDPrefix   string
	Fields     []FieldSpec
	AssetFields []AssetField
	// ReadOnly collections can only be listed; the console offers no
	// create/edit/delete for them.
	ReadOnly bool
	// AuthorizedReads adds the bearer token to list requests as well as
	// mutations.
	AuthorizedReads bool
}

// AssetField returns the asset field named name, or nil.
func (d *Descriptor) AssetField(name string) *AssetField {
	for i := range d.AssetFields {
		if d.AssetFields[i].Name == name {
			return &d.AssetFields[i]
		}
	}
	return nil
}

var (
	videoConstraints = FileConstraints{
		AllowedMIMETypes: []string{
			"video/mp4", "video/webm", "video/ogg", "video/x-msvideo", "video/quicktime",
		},
		MaxSizeBytes: 100 << 20,
	}
	thumbnailConstraints = FileConstraints{
		AllowedMIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		},
		MaxSizeBytes: 10 << 20,
	}
)

// storyFields is shared by testimonials and success stories, which carry
// the same record shape.
func storyFields(required ...string) []FieldSpec {
	req := make(map[string]bool, len(required))
	for _, name := range required {
		req[name] = true
	}
	fields := []FieldSpec{
		{Name: "student", Kind: Text},
		{Name: "age", Kind: Integer},
		{Name: "location", Kind: Text},
		{Name: "timeframe", Kind: Text},
		{Name: "revenue", Kind: Text},
		{Name: "growth", Kind: Text},
		{Name: "video_url", Kind: Text},
		{Name: "thumbnail", Kind: Text},
		{Name: "duration", Kind: Text},
		{Name: "testimonial", Kind: Text, Multiline: true},
		{Name: "beforeJob", Kind: Text},
		{Name: "afterStatus", Kind: Text},
		{Name: "rating", Kind: Rating},
		{Name: "joinDate", Kind: Text},
	}
	for i := range fields {
		fields[i].Required = req[fields[i].Name]
	}
	return fields
}

// VideoCategories is the fixed category list offered for video entries.
var VideoCategories = []string{
	"Tutorial", "Course", "Webinar", "Demo",
	"Review", "Introduction", "Advanced", "Beginner",
}

// Testimonials describes the student-testimonial collection. Ids are
// client-generated sequential integers.
func Testimonials() *Descriptor {
	return &Descriptor{
		Name:       "testimonial",
		Collection: "testimonials",
		Namespace:  "testimonials",
		IDStrategy: Sequential,
		Fields:     storyFields("student", "age", "location", "testimonial", "rating"),
		AssetFields: []AssetField{
			{Name: "video_url", Constraints: videoConstraints},
			{Name: "thumbnail", Constraints: thumbnailConstraints},
		},
	}
}

// SuccessStories describes the success-story collection. Ids are
// client-generated creation timestamps; the record API stores them as
// given, so the console never depends on the server inventing one.
func SuccessStories() *Descriptor {
	return &Descriptor{
		Name:       "success story",
		Collection: "success",
		Namespace:  "success",
		IDStrategy: Timestamp,
		Fields:     storyFields("student", "age"),
		AssetFields: []AssetField{
			{Name: "video_url", Constraints: videoConstraints},
			{Name: "thumbnail", Constraints: thumbnailConstraints},
		},
	}
}

// Videos describes the video-entry collection. Ids are composite strings
// incorporating a timestamp and a short random suffix.
func Videos() *Descriptor {
	return &Descriptor{
		Name:       "video",
		Collection: "videos",
		Namespace:  "videos",
		IDStrategy: Composite,
		IDPrefix:   "video",
		Fields: []FieldSpec{
			{Name: "title", Kind: Text, Required: true},
			{Name: "thumbnail", Kind: Text},
			{Name: "category", Kind: Choice, Required: true, Options: VideoCategories},
			{Name: "views", Kind: Integer, Default: "0"},
			{Name: "video_url", Kind: Text},
		},
		AssetFields: []AssetField{
			{Name: "video_url", Constraints: videoConstraints},
			{Name: "thumbnail", Constraints: thumbnailConstraints},
		},
	}
}

// Responses describes the read-only course-enquiry collection.
func Responses() *Descriptor {
	return &Descriptor{
		Name:            "response",
		Collection:      "responses",
		Namespace:       "responses",
		IDStrategy:      ServerAssigned,
		Fields: []FieldSpec{
			{Name: "name", Kind: Text},
			{Name: "email", Kind: Text},
			{Name: "phoneNumber", Kind: Text},
			{Name: "selectedCourse", Kind: Text},
			{Name: "query", Kind: Text},
			{Name: "prefered_call_time", Kind: Text},
			{Name: "status", Kind: Text},
		},
		ReadOnly:        true,
		AuthorizedReads: true,
	}
}
