package model

// Item describes a donatable good in the catalog.  Names are stored
// trimmed and lower-cased; display layers title-case them.  Items are
// never deleted once created.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – normalized (lower-case) item name, unique.
//  UnitOfMeasurement – measurement unit: Kg, L or Nos.
type Item struct {
    ID                uint64 // items.id
    Name              string // items.name
    UnitOfMeasurement string // items.unit_of_measurement
}

// Units lists the accepted units of measurement for items.
var Units = map[string]bool{
    "Kg":  true,
    "L":   true,
    "Nos": true,
}
