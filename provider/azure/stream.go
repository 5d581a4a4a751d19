package azure

import (
	"bufio"
	"encoding/json"
	"iter"
	"net/http"
	"strings"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
)

// decodeSSE turns a streaming response body into a chunk sequence. Azure
// speaks the same event framing as OpenAI: "data: <json>" lines terminated
// by "[DONE]". The body is closed when the sequence ends.
func (p *Provider) decodeSSE(resp *http.Response) iter.Seq2[provider.Chunk, error] {
	return func(yield func(provider.Chunk, error) bool) {
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			data, ok := strings.CutPrefix(line, "data:")
			if !ok {
				continue
			}
			data = strings.TrimSpace(data)
			if data == "[DONE]" {
				return
			}

			var event streamChunk
			if err := json.Unmarshal([]byte(data), &event); err != nil {
				yield(provider.Chunk{}, fault.Wrap(fault.KindExternalAPI, err,
					"decoding stream event").WithProvider(ProviderName))
				return
			}

			chunk := provider.Chunk{}
			if len(event.Choices) > 0 {
				chunk.Content = event.Choices[0].Delta.Content
				chunk.FinishReason = event.Choices[0].FinishReason
			}
			if event.Usage != nil {
				u := event.Usage.usage()
				chunk.Usage = &u
				p.recordUsage(u)
			}

			if !yield(chunk, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(provider.Chunk{}, fault.Wrap(fault.KindNetwork, err,
				"reading stream").WithProvider(ProviderName))
		}
	}
}
