package domain

import (
	"encoding/json"
	"fmt"
)

// Record is the dictionary shape handed to callers and written verbatim as a response body.
type Record map[string]any

// CenterRecord returns {id, login}, plus address in the long form.
func CenterRecord(c Center, long bool) Record {
	rec := Record{
		"id":    c.ID,
		"login": c.Login,
	}
	if long {
		rec["address"] = c.Address
	}
	return rec
}

// AnimalRecord returns {id, name}, plus every other column in the long form.
func AnimalRecord(a Animal, long bool) Record {
	rec := Record{
		"id":   a.ID,
		"name": a.Name,
	}
	if long {
		rec["center_id"] = a.CenterID
		rec["description"] = optional(a.Description)
		rec["age"] = a.Age
		rec["species_id"] = a.SpeciesID
		rec["price"] = optional(a.Price)
	}
	return rec
}

func SpeciesRecord(s Species, long bool) Record {
	rec := Record{
		"id":   s.ID,
		"name": s.Name,
	}
	if long {
		rec["description"] = optional(s.Description)
		rec["price"] = optional(s.Price)
	}
	return rec
}

func SpeciesCountRecord(c SpeciesCount) Record {
	return Record{
		"species_name":     c.Name,
		"count_of_animals": c.Count,
	}
}

func AnimalRecords(animals []Animal, long bool) []Record {
	out := make([]Record, 0, len(animals))
	for _, a := range animals {
		out = append(out, AnimalRecord(a, long))
	}
	return out
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// AnimalFromRecord is the inverse of AnimalRecord(a, true). It also accepts numbers as
// produced by encoding/json.
func AnimalFromRecord(rec Record) (Animal, error) {
	var a Animal
	var err error

	if a.ID, err = int64Field(rec, "id"); err != nil {
		return Animal{}, err
	}
	if a.CenterID, err = int64Field(rec, "center_id"); err != nil {
		return Animal{}, err
	}
	if a.SpeciesID, err = int64Field(rec, "species_id"); err != nil {
		return Animal{}, err
	}
	age, err := int64Field(rec, "age")
	if err != nil {
		return Animal{}, err
	}
	a.Age = int(age)

	name, ok := rec["name"].(string)
	if !ok {
		return Animal{}, fmt.Errorf("animal record: field name has type %T", rec["name"])
	}
	a.Name = name

	switch v := rec["description"].(type) {
	case nil:
	case string:
		a.Description = &v
	case *string:
		a.Description = v
	default:
		return Animal{}, fmt.Errorf("animal record: field description has type %T", v)
	}

	if v, present := rec["price"]; present && v != nil {
		if p, ok := v.(*float64); ok {
			a.Price = p
		} else {
			price, err := toFloat64(v)
			if err != nil {
				return Animal{}, fmt.Errorf("animal record: field price: %w", err)
			}
			a.Price = &price
		}
	}

	return a, nil
}

func int64Field(rec Record, key string) (int64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, fmt.Errorf("animal record: missing field %s", key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("animal record: field %s is not an integer: %v", key, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("animal record: field %s: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("animal record: field %s has type %T", key, v)
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
