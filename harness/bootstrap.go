package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloudscape/core"
)

// AcquireFunc creates the drawing surface and its graphics device
type AcquireFunc func() (Device, Surface, error)

// FetchFunc loads the fragment shader source
type FetchFunc func(ctx context.Context) (string, error)

// Options configures Boot
type Options struct {
	// VertexSource defaults to QuadVertexShader
	VertexSource string
	// VolumeSize defaults to core.NoiseVolumeSize
	VolumeSize int
	// Defaults are the initial uniform values; the zero value means DefaultValues()
	Defaults Defaults

	Notifier Notifier
	Logger   *slog.Logger
}

// Boot runs the startup sequence: acquire the context, upload the noise
// volume, fetch and build the shader program, resolve uniforms, seed the
// camera and attach the viewport. Any failure is terminal: the error is
// logged, one notice is presented and the returned harness is in
// StateFailed with no further GPU work done.
func Boot(ctx context.Context, acquire AcquireFunc, fetch FetchFunc, opts Options) (*Harness, Surface, error) {
	logger := orNop(opts.Logger)
	if opts.VertexSource == "" {
		opts.VertexSource = QuadVertexShader
	}
	if opts.VolumeSize <= 0 {
		opts.VolumeSize = core.NoiseVolumeSize
	}
	if opts.Defaults == (Defaults{}) {
		opts.Defaults = DefaultValues()
	}

	h := &Harness{logger: logger}
	fail := func(err error) (*Harness, Surface, error) {
		h.setState(core.StateFailed)
		logger.Error("initialization failed", "error", err)
		if opts.Notifier != nil {
			opts.Notifier.Notify(core.Notice(err))
		}
		return h, nil, err
	}

	h.setState(core.StateAcquiring)
	dev, surface, err := acquire()
	if err != nil {
		if !errors.Is(err, core.ErrContextUnavailable) {
			err = fmt.Errorf("%w: %w", core.ErrContextUnavailable, err)
		}
		return fail(err)
	}

	h.setState(core.StateBuilding)
	volume := core.NewVolume(opts.VolumeSize)
	dev.UploadVolume(volume, core.NoiseTextureUnit)
	logger.Debug("noise volume uploaded", "size", volume.Size, "unit", core.NoiseTextureUnit)

	fragmentSource, err := fetch(ctx)
	if err != nil {
		var fetchErr *core.ResourceFetchError
		if !errors.As(err, &fetchErr) {
			err = &core.ResourceFetchError{Resource: "fragment shader", Err: err}
		}
		return fail(err)
	}

	program, err := BuildProgram(dev, opts.VertexSource, fragmentSource, logger)
	if err != nil {
		return fail(err)
	}

	h.init(dev, program, opts.Defaults)
	h.AttachViewport(surface)
	h.setState(core.StateReady)
	logger.Info("harness ready",
		"viewport", fmt.Sprintf("%dx%d", h.viewport.Width, h.viewport.Height))

	return h, surface, nil
}
