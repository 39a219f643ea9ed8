package edux

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FormIDs are the ids of the score edit form in the Czech and English UI.
var FormIDs = []string{"cs_form_edit_score", "en_form_edit_score"}

// ParseForm extracts the named inputs of the score edit form
func ParseForm(r io.Reader) (*Form, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var form *Form
	var sel *goquery.Selection
	doc.Find("form").EachWithBreak(func(i int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		for _, known := range FormIDs {
			if id == known {
				form = &Form{ID: id}
				sel = s
				return false
			}
		}
		return true
	})
	if form == nil {
		return nil, ErrFormNotFound
	}

	index := make(map[string]int)
	sel.Find("input").Each(func(i int, input *goquery.Selection) {
		// Inputs without a name (e.g. layout toggles) are never submitted
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}

		field := Field{
			Name:  name,
			Value: input.AttrOr("value", ""),
			Type:  strings.ToLower(input.AttrOr("type", "text")),
		}
		if pos, seen := index[name]; seen {
			form.Fields[pos] = field
			return
		}
		index[name] = len(form.Fields)
		form.Fields = append(form.Fields, field)
	})

	return form, nil
}

// FetchForm downloads the edit page of a classification item and parses its score form
func (c *Client) FetchForm(ctx context.Context, course string, path []string) (*Form, error) {
	body, err := c.Get(ctx, classificationPath(course, path), url.Values{"do": {"edit"}})
	if err != nil {
		return nil, err
	}
	return ParseForm(strings.NewReader(body))
}

// SubmitForm posts the given values back to the classification item.
// Edux does not report whether the change was accepted, so callers re-fetch
// the form to check.
func (c *Client) SubmitForm(ctx context.Context, course string, path []string, values map[string]string) error {
	_, err := c.Post(ctx, classificationPath(course, path), values)
	return err
}
