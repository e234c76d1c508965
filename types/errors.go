package types

/**
* Error taxonomy of the simulation core. All fatal error conditions wrap one
* of these sentinels so that callers can discriminate with errors.Is().
 */

import "github.com/pkg/errors"

var (
	// ErrGeometry indicates a malformed or empty mesh. Fatal, aborts the load.
	ErrGeometry = errors.New("geometry error")

	// ErrSceneConfig indicates an invalid target set, e.g. two targets
	// flagged as ground. Fatal, aborts simulation setup.
	ErrSceneConfig = errors.New("scene config error")

	// ErrConfig indicates a radar parameter invariant violation, e.g. pulse
	// duration exceeding the pulse repetition interval. Fatal at
	// configuration time, before any tracing begins.
	ErrConfig = errors.New("radar config error")
)

// GeometryErrorf returns a new error wrapping ErrGeometry.
func GeometryErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrGeometry, format, args...)
}

// SceneConfigErrorf returns a new error wrapping ErrSceneConfig.
func SceneConfigErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSceneConfig, format, args...)
}

// ConfigErrorf returns a new error wrapping ErrConfig.
func ConfigErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, format, args...)
}
