package analyzer

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/voicecanvas/internal/audio"
)

const (
	DefaultMinBackoff = 1 * time.Second
	DefaultMaxBackoff = 60 * time.Second
)

// Request is the message sent to the analysis service every interval.
type Request struct {
	Type       string `json:"type"`
	Seq        uint64 `json:"seq"`
	SampleRate int    `json:"sampleRate"`
	// Audio is base64 of little-endian float32 mono samples.
	Audio string `json:"audio"`
}

// WebSocket streams audio chunks to a remote analyzer and forwards replies.
// Replies that fail to decode are replaced with Fallback().
type WebSocket struct {
	URL      string
	Interval time.Duration
	// Audio supplies the chunks. Requests carry no audio when nil.
	Audio audio.Recorder

	Dialer     *websocket.Dialer
	MinBackoff time.Duration
	MaxBackoff time.Duration

	seq uint64
}

func NewWebSocket(url string, interval time.Duration, rec audio.Recorder) *WebSocket {
	return &WebSocket{
		URL:      url,
		Interval: interval,
		Audio:    rec,
	}
}

// Run connects, reconnecting with exponential backoff, until ctx is done.
func (w *WebSocket) Run(ctx context.Context, sink Sink) error {
	dialer := w.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	minBackoff, maxBackoff := w.MinBackoff, w.MaxBackoff
	if minBackoff <= 0 {
		minBackoff = DefaultMinBackoff
	}
	if maxBackoff < minBackoff {
		maxBackoff = max(DefaultMaxBackoff, minBackoff)
	}

	backoff := minBackoff
	for {
		log.Printf("connecting to analyzer: %s", w.URL)
		c, _, err := dialer.DialContext(ctx, w.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("dial error: %v. retrying in %v", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff

		err = w.session(ctx, c, sink)
		c.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("analyzer connection lost: %v. reconnecting", err)
	}
}

// session sends a request every interval and forwards replies until the
// connection fails or ctx is done. It returns only after the reader has
// exited, so no sink call outlives it.
func (w *WebSocket) session(ctx context.Context, c *websocket.Conn, sink Sink) error {
	readErr := make(chan error, 1)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			a, err := Decode(msg)
			if err != nil {
				log.Printf("analysis error: %v", err)
				a = Fallback()
			}
			sink(a)
		}
	}()

	defer func() {
		c.Close()
		<-readDone
	}()

	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
				log.Printf("close analyzer connection: %v", err)
			}
			return ctx.Err()
		case err := <-readErr:
			return fmt.Errorf("read: %w", err)
		case <-ticker.C:
			data, err := json.Marshal(w.request())
			if err != nil {
				return err
			}
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (w *WebSocket) interval() time.Duration {
	if w.Interval <= 0 {
		return 2500 * time.Millisecond
	}
	return w.Interval
}

func (w *WebSocket) request() Request {
	w.seq++
	req := Request{Type: "analyze", Seq: w.seq}
	if w.Audio != nil {
		req.SampleRate = w.Audio.SampleRate()
		n := int(w.interval().Seconds() * float64(req.SampleRate))
		req.Audio = EncodeSamples(w.Audio.Samples(n))
	}
	return req
}

// EncodeSamples packs samples as little-endian float32 and base64-encodes them.
func EncodeSamples(samples []float32) string {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func DecodeSamples(s string) ([]float32, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("audio payload of %d bytes is not float32 aligned", len(buf))
	}
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out, nil
}
