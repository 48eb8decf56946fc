// Package gen compiles modelql models into a GraphQL schema and the Go code
// that serves it.
//
// # Pipeline
//
// A compilation runs in one Session:
//
//	load.Files("models/*.yml")
//	        ↓
//	   Session.AddModel (object type per model, fields resolved lazily)
//	        ↓
//	   Session.Finalize (operation types, Query/Mutation roots, SDL, document)
//	        ↓
//	   Graph.Files (models.go, <model>_resolver.go rendered with jennifer)
//	        ↓
//	   Writer (imports.Process, parallel writes to the target)
//
// A Session owns its type registries. Sessions are not safe for concurrent
// use, but any number of them may run side by side.
//
// # Operation shapes
//
// Each operation of a model gets an input and a result type named after the
// model and the operation kind:
//
//	show    BookShowInput   { id: ID! }             BookShowResult   { entry: Book }
//	list    BookListInput   { ..., sort, paginate } BookListResult   { entries: [Book!]!, total: Int! }
//	create  BookCreateInput { ... }                 BookCreateResult { entry: Book }
//	update  BookUpdateInput { id: ID!, ... }        BookUpdateResult { entry: Book }
//	remove  BookRemoveInput { id: ID! }             BookRemoveResult { entry: Book }
//
// show and list operations are fields of Query, the others of Mutation. The
// root field of an operation is its name followed by the model name, e.g.
// findBook.
//
// # Error Handling
//
// Failures are reported with structured errors matching a sentinel:
//
//   - UnknownTypeError (ErrUnknownType)
//   - UnsupportedOperationError (ErrUnsupportedOperation)
//   - UnknownValidatorError (ErrUnknownValidator)
//   - ValidatorError (ErrInvalidValidator)
//   - ModelNotFoundError (ErrModelNotFound)
//   - ConfigError (ErrMissingConfig)
//   - GenerationError (ErrGenerationFailed)
//
// No output is written unless every step succeeded.
//
// # Usage
//
//	models, err := load.Files("./models/*.yml")
//	if err != nil {
//	    return err
//	}
//	_, err = gen.Generate(ctx, models,
//	    gen.WithTarget("./graph"),
//	    gen.WithPackage("example.com/app/graph"),
//	)
package gen
