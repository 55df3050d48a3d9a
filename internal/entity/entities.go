package entity

// Personal has cardinality at most one: create conflicts when a document
// already exists and update targets the sole document implicitly.
var Personal = Schema{
	Name:       "Personal information",
	Collection: "personal",
	Singleton:  true,
	Fields: []Field{
		{Name: "name", Kind: Text, Required: true},
		{Name: "passion", Kind: Text},
		{Name: "address", Kind: Text},
		{Name: "phone", Kind: Text},
		{Name: "email", Kind: Email, Required: true},
		{Name: "linkedin", Kind: URL},
		{Name: "github", Kind: URL},
		{Name: "birthdate", Kind: Date},
	},
}

// Education keeps its dates as free-form strings ("2019", "Fall 2020").
var Education = Schema{
	Name:       "Education record",
	Collection: "educations",
	Fields: []Field{
		{Name: "institution", Kind: Text, Required: true},
		{Name: "degree", Kind: Text, Required: true},
		{Name: "field_of_study", Kind: Text},
		{Name: "start_date", Kind: Text},
		{Name: "end_date", Kind: Text},
		{Name: "description", Kind: Text},
	},
}

// Experience's company field keeps its historical capitalized wire name.
var Experience = Schema{
	Name:       "Experience record",
	Collection: "experiences",
	Fields: []Field{
		{Name: "Company_name", Kind: Text, Required: true},
		{Name: "position", Kind: Text},
		{Name: "start_date", Kind: Date},
		{Name: "end_date", Kind: Date},
		{Name: "description", Kind: Text},
		{Name: "website", Kind: URL},
	},
}

var Certificate = Schema{
	Name:       "Certificate",
	Collection: "certificates",
	Fields: []Field{
		{Name: "title", Kind: Text, Required: true},
		{Name: "issuer", Kind: Text, Required: true},
		{Name: "issue_date", Kind: Date},
		{Name: "expiration_date", Kind: Date},
		{Name: "description", Kind: Text},
		{Name: "certificate_url", Kind: URL},
	},
}

var Project = Schema{
	Name:       "Project",
	Collection: "projects",
	Fields: []Field{
		{Name: "name", Kind: Text, Required: true},
		{Name: "description", Kind: Text},
		{Name: "repository_url", Kind: Text},
		{Name: "live_url", Kind: Text},
		{Name: "technologies", Kind: StringList},
	},
}

var Phone = Schema{
	Name:       "Phone",
	Collection: "phones",
	Fields: []Field{
		{Name: "number", Kind: Text, Required: true},
	},
}

// Skill holds an uploaded icon; image_data is the base64 payload and the
// list endpoint serves it back as a data-URI.
var Skill = Schema{
	Name:       "Skill icon",
	Collection: "tech_stacks",
	Fields: []Field{
		{Name: "name", Kind: Text, Required: true},
		{Name: "image_filename", Kind: Text, Required: true},
		{Name: "content_type", Kind: Text},
		{Name: "image_data", Kind: Blob},
	},
}

// All lists every persisted schema. Contact is absent: it is never stored.
func All() []Schema {
	return []Schema{Personal, Education, Experience, Certificate, Project, Phone, Skill}
}

// Collections returns the backing collection names, used by SQL-backed
// stores to provision their tables.
func Collections() []string {
	all := All()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, s.Collection)
	}
	return out
}
