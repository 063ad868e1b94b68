package progress

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// UploadProgress draws one byte-count bar per upload.
type UploadProgress struct {
	container *mpb.Progress
	enabled   bool
}

func NewUploadProgress(config ProgressConfig) *UploadProgress {
	if !config.Enabled {
		return &UploadProgress{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	return &UploadProgress{
		container: mpb.New(
			mpb.WithOutput(writer),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
		enabled: true,
	}
}

// Wrap returns a reader that advances a bar named name as r is consumed.
// Its signature matches the API client's WrapUpload hook.
func (p *UploadProgress) Wrap(name string) func(r io.Reader, size int64) io.Reader {
	return func(r io.Reader, size int64) io.Reader {
		if !p.enabled {
			return r
		}

		bar := p.container.AddBar(size,
			mpb.PrependDecorators(
				decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.NewPercentage("%.1f", decor.WCSyncSpace),
				decor.OnComplete(
					decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30, decor.WCSyncSpace), " ✓ uploaded",
				),
			),
		)
		return bar.ProxyReader(r)
	}
}

// Wait blocks until every bar has finished rendering.
func (p *UploadProgress) Wait() {
	if p.enabled {
		p.container.Wait()
	}
}
