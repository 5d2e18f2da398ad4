package settings

import (
	"context"
	"fmt"

	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported backend names.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Options selects and configures a backend.
type Options struct {
	Backend string // memory, file, redis or mongo; empty means file
	Dir     string // file backend directory
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		if opts.Redis.Addr == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "redis backend requires an address")
		}
		return NewRedisStore(ctx, opts.Redis)
	case BackendMongo:
		if opts.Mongo.URI == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "mongo backend requires a URI")
		}
		return NewMongoStore(ctx, opts.Mongo)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unknown settings backend %q", opts.Backend)
	}
}

// String describes where the selected backend keeps its data.
func (o Options) String() string {
	switch o.Backend {
	case BackendMemory:
		return "memory"
	case BackendRedis:
		return fmt.Sprintf("redis://%s/%d", o.Redis.Addr, o.Redis.DB)
	case BackendMongo:
		db := o.Mongo.Database
		if db == "" {
			db = DefaultMongoDatabase
		}
		return fmt.Sprintf("mongo database %q", db)
	default:
		if o.Dir == "" {
			if dir, err := DefaultDir(); err == nil {
				return dir
			}
		}
		return o.Dir
	}
}
