package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	// Форматы, которые понимает image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	fetchTimeout = 30 * time.Second
	maxTexture   = 32 << 20 // 32 МБ
)

// ErrNoTexture - источник текстуры не задан, играем без нее.
var ErrNoTexture = errors.New("no texture source")

// TextureLoader загружает и декодирует картинку в фоне.
// GPU-текстура создается позже, в главном потоке, из Image().
type TextureLoader struct {
	source string
	client *http.Client
	logger *log.Logger

	ready chan struct{}
	once  sync.Once

	img    image.Image
	format string
	err    error
}

// NewTextureLoader создает загрузчик для файла или http(s) URL.
func NewTextureLoader(source string, client *http.Client, logger *log.Logger) *TextureLoader {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TextureLoader{
		source: strings.TrimSpace(source),
		client: client,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Start запускает загрузку. Повторные вызовы ничего не делают.
func (l *TextureLoader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

// Ready закрывается, когда загрузка завершилась (успешно или нет).
func (l *TextureLoader) Ready() <-chan struct{} {
	return l.ready
}

// Result возвращает картинку или ошибку. Вызывать только после Ready.
func (l *TextureLoader) Result() (image.Image, error) {
	select {
	case <-l.ready:
		return l.img, l.err
	default:
		return nil, errors.New("texture is still loading")
	}
}

// Source возвращает исходный путь или URL.
func (l *TextureLoader) Source() string {
	return l.source
}

func (l *TextureLoader) run(ctx context.Context) {
	defer close(l.ready)
	if l.source == "" {
		l.err = ErrNoTexture
		return
	}
	start := time.Now()
	img, format, err := Fetch(ctx, l.client, l.source)
	if err != nil {
		l.err = err
		l.logger.Printf("WARNING: texture %s unavailable, surface will be untextured: %v", l.source, err)
		return
	}
	l.img, l.format = img, format
	b := img.Bounds()
	l.logger.Printf("Loaded %s texture %dx%d from %s in %v", format, b.Dx(), b.Dy(), l.source, time.Since(start).Round(time.Millisecond))
}

// Fetch читает картинку из файла или по http(s) и декодирует ее.
func Fetch(ctx context.Context, client *http.Client, source string) (image.Image, string, error) {
	rc, err := open(ctx, client, source)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	return Decode(rc)
}

// Decode декодирует jpeg, png, gif, bmp или webp.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(io.LimitReader(r, maxTexture))
	if err != nil {
		return nil, "", fmt.Errorf("decode texture: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("decode texture: empty %s image", format)
	}
	return img, format, nil
}

func open(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("texture request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch texture: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch texture: unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	}
	path := source
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	return f, nil
}
