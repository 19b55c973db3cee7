package fixture

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/clinidocs/docrouter/internal/adapters/driven/storage/memory"
	"github.com/clinidocs/docrouter/internal/core/domain"
)

// Site is a complete site description: schemas, libraries with their
// fields and items, principals, term sets, routing rules, and pending
// submissions.
type Site struct {
	URL          string        `toml:"url"`
	ContentTypes []ContentType `toml:"content_types"`
	Libraries    []Library     `toml:"libraries"`
	Groups       []string      `toml:"groups"`
	Users        []string      `toml:"users"`
	AutoUsers    bool          `toml:"auto_register_users"`
	TermSets     []TermSet     `toml:"term_sets"`
	Rules        []Rule        `toml:"rules"`
	Submissions  []Submission  `toml:"submissions"`
}

// ContentType is one schema node in the fixture.
type ContentType struct {
	Name   string `toml:"name"`
	Parent string `toml:"parent"`
}

// Library is one library with its schema and seeded items.
type Library struct {
	Title               string   `toml:"title"`
	DocumentLibrary     bool     `toml:"document_library"`
	ContentTypesEnabled bool     `toml:"content_types_enabled"`
	DropOff             bool     `toml:"drop_off"`
	ContentTypes        []string `toml:"content_types"`
	Fields              []Field  `toml:"fields"`
	Items               []Item   `toml:"items"`
}

// Field is one field definition in a library schema.
type Field struct {
	Internal     string `toml:"internal"`
	Title        string `toml:"title"`
	Kind         string `toml:"kind"`
	ReadOnly     bool   `toml:"read_only"`
	Multi        bool   `toml:"multi"`
	LookupList   string `toml:"lookup_list"`
	LookupColumn string `toml:"lookup_column"`
	TermSet      string `toml:"term_set"`
}

// Item is one seeded list item.
type Item struct {
	Name        string            `toml:"name"`
	Folder      string            `toml:"folder"`
	ContentType string            `toml:"content_type"`
	Values      map[string]string `toml:"values"`
}

// TermSet is one taxonomy term set.
type TermSet struct {
	ID    string `toml:"id"`
	Terms []Term `toml:"terms"`
}

// Term is one taxonomy term. A zero WssID loads as unbound.
type Term struct {
	Label string `toml:"label"`
	GUID  string `toml:"guid"`
	WssID int    `toml:"wss_id"`
}

// Rule is one routing rule.
type Rule struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Description   string `toml:"description"`
	ContentType   string `toml:"content_type"`
	TargetLibrary string `toml:"target_library"`
	TargetFolder  string `toml:"target_folder"`
	Priority      int    `toml:"priority"`
	Disabled      bool   `toml:"disabled"`
	ConditionsXML string `toml:"conditions_xml"`
}

// Submission is one pending intake event.
type Submission struct {
	ContentType string            `toml:"content_type"`
	UserName    string            `toml:"user"`
	SourceURL   string            `toml:"source_url"`
	Content     string            `toml:"content"`
	Properties  map[string]string `toml:"properties"`
	FinalFolder string            `toml:"final_folder"`
}

// Stores is the set of in-memory stores a loaded fixture seeds.
type Stores struct {
	Content   *memory.ContentStore
	Directory *memory.Directory
	Terms     *memory.TermStore
	Rules     *memory.RuleStore
}

// Load reads a site fixture from a TOML file.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var site Site
	if err := toml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	if site.URL == "" {
		return nil, fmt.Errorf("fixture %s: site url is required", path)
	}
	return &site, nil
}

// Build seeds fresh in-memory stores from the site description.
func (s *Site) Build() *Stores {
	content := memory.NewContentStore()
	for _, ct := range s.ContentTypes {
		parent := ct.Parent
		if parent == "" {
			parent = ct.Name
		}
		content.AddContentType(domain.ContentType{Name: ct.Name, ParentName: parent})
	}
	for _, lib := range s.Libraries {
		content.AddLibrary(domain.Library{
			Title:               lib.Title,
			WebURL:              s.URL,
			IsDocumentLibrary:   lib.DocumentLibrary,
			ContentTypesEnabled: lib.ContentTypesEnabled,
			DropOff:             lib.DropOff,
			ContentTypeNames:    lib.ContentTypes,
		})
		fields := make([]domain.Field, 0, len(lib.Fields))
		for _, f := range lib.Fields {
			fields = append(fields, domain.Field{
				InternalName: f.Internal,
				Title:        f.Title,
				Kind:         domain.KindFromName(f.Kind),
				ReadOnly:     f.ReadOnly,
				Multi:        f.Multi,
				LookupList:   f.LookupList,
				LookupColumn: f.LookupColumn,
				TermSetID:    f.TermSet,
			})
		}
		content.SetFields(lib.Title, fields)
		for _, item := range lib.Items {
			content.AddItem(lib.Title, domain.Item{
				Name:            item.Name,
				Folder:          item.Folder,
				ContentTypeName: item.ContentType,
				Values:          item.Values,
			})
		}
	}

	directory := memory.NewDirectory()
	directory.AutoRegister = s.AutoUsers
	for _, name := range s.Groups {
		directory.AddGroup(name)
	}
	for _, name := range s.Users {
		directory.AddUser(name)
	}

	terms := memory.NewTermStore()
	for _, set := range s.TermSets {
		for _, term := range set.Terms {
			terms.AddTerm(set.ID, domain.Term{Label: term.Label, GUID: term.GUID, WssID: term.WssID})
		}
	}

	rules := memory.NewRuleStore()
	for _, r := range s.Rules {
		// Seeding cannot fail in the memory store.
		_ = rules.Save(context.Background(), domain.RoutingRule{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			ContentTypeName: r.ContentType,
			WebURL:          s.URL,
			TargetLibrary:   r.TargetLibrary,
			TargetFolder:    r.TargetFolder,
			Priority:        r.Priority,
			Enabled:         !r.Disabled,
			ConditionsXML:   r.ConditionsXML,
		})
	}

	return &Stores{Content: content, Directory: directory, Terms: terms, Rules: rules}
}

// DomainSubmissions converts the fixture's pending submissions.
func (s *Site) DomainSubmissions() []domain.Submission {
	out := make([]domain.Submission, 0, len(s.Submissions))
	for _, sub := range s.Submissions {
		names := make([]string, 0, len(sub.Properties))
		for name := range sub.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		props := make([]domain.Property, 0, len(names))
		for _, name := range names {
			props = append(props, domain.Property{Name: name, Value: sub.Properties[name]})
		}
		out = append(out, domain.Submission{
			ContentTypeName: sub.ContentType,
			UserName:        sub.UserName,
			Content:         []byte(sub.Content),
			SourceURL:       sub.SourceURL,
			Properties:      props,
			FinalFolder:     sub.FinalFolder,
		})
	}
	return out
}
