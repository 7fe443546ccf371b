package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/lachho/devsoc/internal/catalogue"
	"github.com/tidwall/gjson"
)

// RawEntry is an entry submission after JSON parsing but before validation.
// Fields that were absent or had the wrong JSON type are left at their zero
// value so that Register can report them in its fixed order.
type RawEntry struct {
	// HasName and HasType record key presence. An empty or null value still
	// counts as present.
	HasName bool
	HasType bool
	// Name and Type hold the raw JSON text when the value is not a string.
	Name string
	Type string
	// CookTime is nil when absent or not an integer.
	CookTime *int
	// RequiredItems is nil when absent or not an array.
	RequiredItems []RawItem
}

// RawItem is one element of a submitted requiredItems array. Quantity is 0
// when absent or not an integer.
type RawItem struct {
	Name     string
	Quantity int
}

// ParseEntry reads an entry submission. It only fails when body is not a JSON
// object; field-level problems are left for Register.
func ParseEntry(body []byte) (RawEntry, error) {
	if !gjson.ValidBytes(body) {
		return RawEntry{}, ErrInvalidBody
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return RawEntry{}, ErrInvalidBody
	}

	var raw RawEntry
	raw.Name, raw.HasName = textField(doc, "name")
	raw.Type, raw.HasType = textField(doc, "type")

	if n, ok := intValue(doc.Get("cookTime")); ok {
		raw.CookTime = &n
	}

	if items := doc.Get("requiredItems"); items.IsArray() {
		raw.RequiredItems = make([]RawItem, 0)
		items.ForEach(func(_, item gjson.Result) bool {
			var ri RawItem
			if item.IsObject() {
				ri.Name = stringField(item, "name")
				ri.Quantity, _ = intValue(item.Get("quantity"))
			}
			raw.RequiredItems = append(raw.RequiredItems, ri)
			return true
		})
	}

	return raw, nil
}

// textField returns the string value of key, or its raw JSON text when the
// value is not a string. ok is false only when key is absent.
func textField(obj gjson.Result, key string) (string, bool) {
	v := obj.Get(key)
	if !v.Exists() {
		return "", false
	}
	if v.Type == gjson.String {
		return v.Str, true
	}
	return v.Raw, true
}

func stringField(obj gjson.Result, key string) string {
	v := obj.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// intValue accepts only JSON numbers written as integers: 5 and -3 pass,
// 5.0 and 1e3 do not.
func intValue(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	n, err := strconv.Atoi(v.Raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Register validates raw and inserts it into the catalogue. Checks run in a
// fixed order and the first failure is returned as a *ValidationError; nothing
// is stored unless every check passes.
func (s *Service) Register(ctx context.Context, raw RawEntry) (catalogue.Entry, error) {
	entry, err := s.validate(ctx, raw)
	if err == nil {
		err = s.store.Insert(ctx, entry)
		if errors.Is(err, catalogue.ErrEntryExists) {
			// Lost a race with a concurrent registration of the same name.
			err = invalid(ErrDuplicateName, "%q", entry.Name)
		}
	}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.RegistrationRejected(verr.Reason())
		}
		return catalogue.Entry{}, err
	}

	s.metrics.EntryRegistered(string(entry.Kind))
	slog.Debug("entry registered", "name", entry.Name, "type", entry.Kind, "id", entry.ID)
	return entry, nil
}

func (s *Service) validate(ctx context.Context, raw RawEntry) (catalogue.Entry, error) {
	if !raw.HasName || !raw.HasType {
		return catalogue.Entry{}, &ValidationError{Kind: ErrMissingFields}
	}

	kind := catalogue.Kind(raw.Type)
	if !kind.Valid() {
		return catalogue.Entry{}, invalid(ErrInvalidType, "%q", raw.Type)
	}

	if s.store.Exists(ctx, raw.Name) {
		return catalogue.Entry{}, invalid(ErrDuplicateName, "%q", raw.Name)
	}

	if kind == catalogue.KindIngredient {
		if raw.CookTime == nil || *raw.CookTime < 0 {
			return catalogue.Entry{}, &ValidationError{Kind: ErrInvalidCookTime}
		}
		return catalogue.NewIngredient(raw.Name, *raw.CookTime), nil
	}

	if raw.RequiredItems == nil {
		return catalogue.Entry{}, &ValidationError{Kind: ErrInvalidRequiredItems}
	}
	items := make([]catalogue.RequiredItem, 0, len(raw.RequiredItems))
	seen := make(map[string]struct{}, len(raw.RequiredItems))
	for i, item := range raw.RequiredItems {
		if item.Name == "" || item.Quantity <= 0 {
			return catalogue.Entry{}, invalid(ErrInvalidRequiredItems, "item %d", i)
		}
		if _, dup := seen[item.Name]; dup {
			return catalogue.Entry{}, invalid(ErrInvalidRequiredItems, "%q listed twice", item.Name)
		}
		seen[item.Name] = struct{}{}
		items = append(items, catalogue.RequiredItem{Name: item.Name, Quantity: item.Quantity})
	}
	return catalogue.NewRecipe(raw.Name, items), nil
}
