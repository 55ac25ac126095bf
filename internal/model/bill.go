package model

import "time"

// BillBook records the donor behind one physical paper bill.  A bill is
// identified by the composite key (bill_book_code, bill_id): the code
// names the booklet (e.g. "B1") and the id is the page within it.  The
// row is created once per bill; the contribution lines live in the
// transactions table.
//
// Fields:
//  BillBookCode – booklet code, part of the composite key.
//  BillID       – page number within the booklet, part of the composite key.
//  DonarName    – donor's name as written on the bill.
//  DonarPhone   – donor's phone number, may be empty.
type BillBook struct {
    BillBookCode string // bill_books.bill_book_code
    BillID       uint64 // bill_books.bill_id
    DonarName    string // bill_books.donar_name
    DonarPhone   string // bill_books.donar_phone_num
}

// Transaction is one contributed line item under a bill.  Several
// transactions can share the same bill key; repeated submissions of the
// same item append rows rather than merging quantities.
type Transaction struct {
    ID           uint64    // transactions.id
    BillBookCode string    // transactions.bill_book_code
    BillID       uint64    // transactions.bill_id
    ItemID       uint64    // transactions.item_id
    Quantity     float64   // transactions.quantity
    DonatedAt    time.Time // transactions.donated_at
}
