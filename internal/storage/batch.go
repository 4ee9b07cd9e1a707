package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/cyrup-ai/glassdesk/internal/state"
	"github.com/cyrup-ai/glassdesk/internal/state/codec"
	"github.com/cyrup-ai/glassdesk/internal/state/migrate"
)

// OpKind identifies a batch operation type.
type OpKind int

// Batch operation kinds.
const (
	OpSave OpKind = iota
	OpLoad
	OpValidate
	OpMigrate
)

// String returns the kind name.
func (k OpKind) String() string {
	switch k {
	case OpSave:
		return "save"
	case OpLoad:
		return "load"
	case OpValidate:
		return "validate"
	case OpMigrate:
		return "migrate"
	}
	return "unknown"
}

// Op is one queued batch operation against an explicit file path.
type Op struct {
	// ID uniquely identifies the operation across batches.
	ID uuid.UUID

	// Kind selects the operation.
	Kind OpKind

	// Path is the target file.
	Path string

	// State is the tree to write, for save operations.
	State *state.State
}

// NewSaveOp queues writing a tree to a path.
func NewSaveOp(st *state.State, path string) Op {
	return Op{ID: uuid.New(), Kind: OpSave, Path: path, State: st}
}

// NewLoadOp queues reading a tree from a path.
func NewLoadOp(path string) Op {
	return Op{ID: uuid.New(), Kind: OpLoad, Path: path}
}

// NewValidateOp queues a document validity check of a path.
func NewValidateOp(path string) Op {
	return Op{ID: uuid.New(), Kind: OpValidate, Path: path}
}

// NewMigrateOp queues an in-place schema upgrade of a path.
func NewMigrateOp(path string) Op {
	return Op{ID: uuid.New(), Kind: OpMigrate, Path: path}
}

// OpResult is the independent outcome of one batch operation.
type OpResult struct {
	// ID matches the operation that produced this result.
	ID uuid.UUID

	// Kind echoes the operation kind.
	Kind OpKind

	// Path echoes the target file.
	Path string

	// State is the loaded tree, for successful load operations.
	State *state.State

	// Err is the operation's failure, nil on success.
	Err error
}

// OK reports whether the operation succeeded.
func (r OpResult) OK() bool {
	return r.Err == nil
}

// Executor runs heterogeneous state file operations strictly in
// submission order. Each operation yields an isolated result; a failure
// never aborts or skips the operations queued after it.
type Executor struct {
	codec    *codec.Serializer
	migrator *migrate.Migrator
}

// NewExecutor creates a batch executor.
func NewExecutor(c *codec.Serializer, m *migrate.Migrator) *Executor {
	if c == nil {
		c = codec.New()
	}
	if m == nil {
		m = migrate.NewMigrator()
	}
	return &Executor{codec: c, migrator: m}
}

// Execute runs the queued operations sequentially and returns one result
// per operation, in submission order. Cancelling the context stops the
// batch between operations; already-produced results are returned and the
// remaining operations are marked with the context error.
func (e *Executor) Execute(ctx context.Context, ops []Op) []OpResult {
	results := make([]OpResult, 0, len(ops))

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			for _, rest := range ops[i:] {
				results = append(results, OpResult{ID: rest.ID, Kind: rest.Kind, Path: rest.Path, Err: err})
			}
			break
		}
		results = append(results, e.run(op))
	}
	return results
}

func (e *Executor) run(op Op) OpResult {
	res := OpResult{ID: op.ID, Kind: op.Kind, Path: op.Path}

	switch op.Kind {
	case OpSave:
		res.Err = e.save(op)
	case OpLoad:
		res.State, res.Err = e.load(op.Path)
	case OpValidate:
		res.Err = e.validate(op.Path)
	case OpMigrate:
		res.Err = e.migrate(op.Path)
	default:
		res.Err = fmt.Errorf("unknown batch operation kind %d", op.Kind)
	}
	return res
}

func (e *Executor) save(op Op) error {
	if op.State == nil {
		return fmt.Errorf("save %s: no state provided", op.Path)
	}
	if err := op.State.Validate(); err != nil {
		return fmt.Errorf("save %s: state is invalid: %w", op.Path, err)
	}
	data, err := e.codec.Encode(op.State)
	if err != nil {
		return fmt.Errorf("save %s: %w", op.Path, err)
	}
	if err := writeFileAtomic(op.Path, data, fileMode); err != nil {
		return pathErr("save", op.Path, err)
	}
	return nil
}

func (e *Executor) load(path string) (*state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pathErr("load", path, err)
	}
	st, err := e.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: state is invalid: %w", path, err)
	}
	return st, nil
}

func (e *Executor) validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pathErr("validate", path, err)
	}
	return e.codec.ValidateDocument(data)
}

func (e *Executor) migrate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pathErr("migrate", path, err)
	}

	needs, err := e.migrator.NeedsMigration(data)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", path, err)
	}
	if !needs {
		return nil
	}

	migrated, _, err := e.migrator.Migrate(data)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", path, err)
	}

	// Migrations are only persisted when the result decodes and
	// validates as a current tree.
	st, err := e.codec.Decode(migrated)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("migrate %s: migrated state is invalid: %w", path, err)
	}

	if err := writeFileAtomic(path, migrated, fileMode); err != nil {
		return pathErr("migrate", path, err)
	}
	return nil
}
