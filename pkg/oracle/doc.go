// Package oracle provides the drawable model behind the oracles tool: sources of
// identifiers, the declarative specifications that describe them, and the values
// drawn from them.
//
// # Overview
//
// A Source is a pool of identifiers built from a SourceTemplate in the shared
// Catalog. Finite sources deplete as they are drawn from and can be shuffled and
// refilled; infinite sources resample on every draw and never change.
//
// An Oracle pairs a Source with a Spec loaded from disk. The Spec carries display
// data for every identifier, a ban list, optional states and an optional image
// template. The Spec is the source of truth for rendering: a Value only holds its
// identifier and state, and resolves its name, description, meaning and image
// through the owning Oracle each time it is asked.
//
// # Reloading
//
// Builder.Update re-reads an Oracle's file and swaps in the new Spec while the
// Source keeps its draw state, so descriptions, bans and new entries can change
// without losing progress against the pool.
//
// # Usage Example
//
//	catalog, err := oracle.LoadCatalog("sources.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	builder := oracle.NewBuilder(catalog, oracle.NewRand(0))
//
//	deck, err := builder.BuildFromFile("oracles/deck.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	deck.Shuffle()
//
//	card, err := deck.Pick()
//	if err != nil {
//		log.Fatal(err)
//	}
//	name, _ := card.Name()
package oracle
