package config

import (
	"fmt"

	"tools.zach/dev/hexbot/internal/migrate"
)

// Migrations is the schema registry for config.toml.
var Migrations = &migrate.Registry{Name: "config", CurrentVersion: 2}

func init() {
	Migrations.Register(migrate.Migration{
		Version:     2,
		Description: "move count, seed and [coordinates_limit] into [request]",
		Upgrade:     upgradeRequestTable,
	})
}

// upgradeRequestTable rewrites the v1 layout
//
//	count = 5
//	seed = ["#8B0000"]
//	[coordinates_limit]
//	x = 100
//	y = 200
//
// into [request] count, seed, width and height. Values already present in
// [request] are kept.
func upgradeRequestTable(doc migrate.Document) error {
	req, err := table(doc, "request")
	if err != nil {
		return err
	}

	move := func(from migrate.Document, oldKey, newKey string) {
		v, ok := from[oldKey]
		if !ok {
			return
		}
		delete(from, oldKey)
		if _, exists := req[newKey]; !exists {
			req[newKey] = v
		}
	}
	move(doc, "count", "count")
	move(doc, "seed", "seed")

	if _, ok := doc["coordinates_limit"]; ok {
		limit, err := table(doc, "coordinates_limit")
		if err != nil {
			return err
		}
		move(limit, "x", "width")
		move(limit, "y", "height")
		delete(doc, "coordinates_limit")
	}

	if len(req) > 0 {
		doc["request"] = req
	}
	return nil
}

// table returns doc[key] as a table, creating an empty one when absent.
func table(doc migrate.Document, key string) (migrate.Document, error) {
	v, ok := doc[key]
	if !ok {
		return migrate.Document{}, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is %T, want a table", key, v)
	}
	return t, nil
}
