// Package autolaunch registers the application for launch at user
// login. One platform mechanism backs the registration: a registry
// run-key value on Windows, a launch agent on macOS, an XDG autostart
// entry on Linux. The Registry owns that mechanism for the process
// lifetime, building it lazily from the executable's resolved identity
// on whichever operation runs first.
//
// Enable and Disable carry asymmetric failure semantics: enabling
// surfaces platform errors, disabling logs and swallows them, so a
// startup "make sure this is off" call cannot fail merely because
// nothing was ever registered.
package autolaunch

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lodestar-app/hostkit/internal/identity"
)

// Mechanism is the platform capability set for login-launch
// registration. Implementations persist state through the OS (run-key
// value, plist file, desktop entry) and treat removal of an absent
// artifact as success.
type Mechanism interface {
	Enable() error
	Disable() error
	IsEnabled() (bool, error)
}

// Factory builds the Mechanism a Registry caches on first use.
type Factory func() (Mechanism, error)

// Registry owns the process-wide auto-launch mechanism. All mutations
// are serialized through one lock; status queries may run concurrently
// with each other but never interleave with a mutation or with the
// first-use installation.
type Registry struct {
	build Factory
	log   *zap.Logger

	mu   sync.RWMutex
	mech Mechanism
}

var (
	globalOnce sync.Once
	globalReg  *Registry
)

// Global returns the shared process-wide Registry. Every call yields
// the same instance.
func Global() *Registry {
	globalOnce.Do(func() {
		globalReg = New(nil)
	})
	return globalReg
}

// New returns a Registry that resolves the running executable's
// identity on first use and registers it with the platform mechanism.
// A nil logger falls back to the global zap logger.
func New(log *zap.Logger) *Registry {
	return NewWithFactory(func() (Mechanism, error) {
		id, err := identity.Resolve(identity.ProcessEnv{})
		if err != nil {
			return nil, err
		}
		return newPlatformMechanism(id)
	}, log)
}

// NewWithFactory returns a Registry backed by a custom mechanism
// factory.
func NewWithFactory(build Factory, log *zap.Logger) *Registry {
	return &Registry{build: build, log: log}
}

// Enable registers the application for launch at login. Platform
// failures surface to the caller. Enabling an already-enabled entry
// overwrites it and succeeds.
func (r *Registry) Enable() error {
	mech, err := r.ensureReady()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := mech.Enable(); err != nil {
		return errors.Wrap(err, "enabling auto-launch")
	}
	return nil
}

// Disable deregisters the application from launch at login. A failure
// from the platform deregistration itself is logged and swallowed;
// deregistering an entry that was never registered is not an error.
// Initialization failures still surface.
func (r *Registry) Disable() error {
	mech, err := r.ensureReady()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := mech.Disable(); err != nil {
		r.logger().Warn("Auto-launch disable failed", zap.Error(err))
	}
	return nil
}

// IsEnabled reports whether the application is currently registered
// for launch at login.
func (r *Registry) IsEnabled() (bool, error) {
	mech, err := r.ensureReady()
	if err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	enabled, err := mech.IsEnabled()
	if err != nil {
		return false, errors.Wrap(err, "querying auto-launch state")
	}
	return enabled, nil
}

// ensureReady returns the cached mechanism, building it on first use.
// The mechanism is constructed outside the lock; when several callers
// race, the first to install wins and the rest discard their redundant
// build and adopt the winner. A failed build leaves the Registry
// uninitialized, so a later call retries.
func (r *Registry) ensureReady() (Mechanism, error) {
	r.mu.RLock()
	mech := r.mech
	r.mu.RUnlock()
	if mech != nil {
		return mech, nil
	}

	built, err := r.build()
	if err != nil {
		return nil, errors.Wrap(err, "initializing auto-launch mechanism")
	}

	r.mu.Lock()
	if r.mech == nil {
		r.mech = built
	}
	mech = r.mech
	r.mu.Unlock()
	return mech, nil
}

func (r *Registry) logger() *zap.Logger {
	if r.log != nil {
		return r.log
	}
	return zap.L()
}
