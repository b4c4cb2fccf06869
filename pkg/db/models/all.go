package models

// All lists every model in dependency order for schema bootstrapping.
func All() []any {
	return []any{
		&Customer{},
		&Substrate{},
		&Finish{},
		&OrderStatus{},
		&PartStatus{},
		&Part{},
		&PartMapping{},
		&Store{},
		&Order{},
		&OrderPart{},
	}
}
