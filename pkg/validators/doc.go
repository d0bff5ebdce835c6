// Package validators provides ready-made listenable.Validator predicates.
//
// Validators are pure functions of the incoming value; only Final also looks
// at the listenable, to let a value through while the container is still
// being constructed:
//
//	store := listenable.MustNew(
//	    listenable.WithValidators(map[string]listenable.Validator{
//	        "id":    validators.Final,
//	        "title": validators.NonEmptyString,
//	        "state": validators.OneOf("draft", "published"),
//	    }),
//	    listenable.WithInitialState(listenable.State{"id": 7, "title": "x", "state": "draft"}),
//	)
package validators
