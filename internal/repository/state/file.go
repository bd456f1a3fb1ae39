package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/stopwatch/internal/config"
	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	pb "github.com/oshokin/stopwatch/internal/pb/v1"
)

// Record is the persisted part of the stopwatch state.
type Record struct {
	// Time is the clock value.
	Time domain.Time
	// Mode is the counting mode.
	Mode domain.Mode
	// RunState tells whether the clock was counting.
	RunState domain.RunState
	// Halted is set when a countdown had stopped at zero.
	Halted bool
	// Timestamp is when the record was written.
	Timestamp time.Time
	// LastActor is who last pressed a remote button, if anyone.
	LastActor *domain.Actor
}

// Repository defines persistence operations for the stopwatch state.
type Repository interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, record *Record) error
}

// FileRepository persists the stopwatch state to a JSON file on disk.
// The file holds the same Struct keys as the panel snapshot, encoded with
// protojson.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

const (
	// keySavedAt holds the RFC 3339 write time.
	keySavedAt = "saved_at"
	// keyActorHostname holds the last actor's hostname.
	keyActorHostname = "last_actor_hostname"
	// keyActorUsername holds the last actor's username.
	keyActorUsername = "last_actor_username"
)

var (
	// ErrNotFound is returned when the state file does not exist yet.
	ErrNotFound = errors.New("state not found")
	// ErrCorrupt is returned when the state file holds impossible values.
	ErrCorrupt = errors.New("state file is corrupt")
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the state from disk.
func (r *FileRepository) Load(_ context.Context) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var fields structpb.Struct
	if err = protojson.Unmarshal(contents, &fields); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return fromProto(&fields)
}

// Save writes the state to disk using JSON representation.
func (r *FileRepository) Save(_ context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields, err := toProto(record)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
	}

	data, err := marshalOptions.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// fromProto converts the stored Struct into a Record.
func fromProto(fields *structpb.Struct) (*Record, error) {
	clock := domain.Time{
		Hours:   uint8(pb.NumberField(fields, pb.StateHours)),
		Minutes: uint8(pb.NumberField(fields, pb.StateMinutes)),
		Seconds: uint8(pb.NumberField(fields, pb.StateSeconds)),
	}

	if !clock.Valid() {
		return nil, fmt.Errorf("clock %s: %w", clock, ErrCorrupt)
	}

	mode, err := domain.ParseMode(pb.StringField(fields, pb.StateMode))
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}

	run, err := domain.ParseRunState(pb.StringField(fields, pb.StateRunState))
	if err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}

	var timestamp time.Time
	if raw := pb.StringField(fields, keySavedAt); raw != "" {
		if timestamp, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, errors.Join(ErrCorrupt, err)
		}
	}

	var actor *domain.Actor

	hostname := pb.StringField(fields, keyActorHostname)
	username := pb.StringField(fields, keyActorUsername)

	if hostname != "" || username != "" {
		actor = &domain.Actor{
			Hostname: hostname,
			Username: username,
		}
	}

	return &Record{
		Time:      clock,
		Mode:      mode,
		RunState:  run,
		Halted:    pb.BoolField(fields, pb.StateHalted),
		Timestamp: timestamp,
		LastActor: actor,
	}, nil
}

// toProto converts a Record into the stored Struct.
func toProto(record *Record) (*structpb.Struct, error) {
	values := map[string]any{
		pb.StateClock:    record.Time.String(),
		pb.StateHours:    int(record.Time.Hours),
		pb.StateMinutes:  int(record.Time.Minutes),
		pb.StateSeconds:  int(record.Time.Seconds),
		pb.StateMode:     record.Mode.String(),
		pb.StateRunState: record.RunState.String(),
		pb.StateHalted:   record.Halted,
	}

	if !record.Timestamp.IsZero() {
		values[keySavedAt] = record.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	if record.LastActor != nil {
		values[keyActorHostname] = record.LastActor.Hostname
		values[keyActorUsername] = record.LastActor.Username
	}

	return structpb.NewStruct(values)
}
