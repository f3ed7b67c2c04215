// Package item models inert cargo that movers carry.
//
// Items are immutable after creation: a name and a strictly positive weight.
// Movers reference items by id and never embed them.
package item
