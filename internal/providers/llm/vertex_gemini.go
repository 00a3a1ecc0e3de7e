package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

const embeddingModel = "text-embedding-004"

type VertexGemini struct {
	client    *vertexgenai.Client
	model     *vertexgenai.GenerativeModel
	jsonModel *vertexgenai.GenerativeModel

	// embeddings are not exposed by the genai client; they go through the
	// aiplatform prediction endpoint
	predictor     *aiplatform.PredictionClient
	embedEndpoint string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)

	jm := c.GenerativeModel(modelName)
	jm.GenerationConfig.ResponseMIMEType = "application/json"

	pc, err := aiplatform.NewPredictionClient(ctx,
		option.WithEndpoint(location+"-aiplatform.googleapis.com:443"))
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return &VertexGemini{
		client:    c,
		model:     m,
		jsonModel: jm,
		predictor: pc,
		embedEndpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			projectID, location, embeddingModel),
	}, nil
}

func (v *VertexGemini) Close() error {
	err := v.client.Close()
	if perr := v.predictor.Close(); err == nil {
		err = perr
	}
	return err
}

func (v *VertexGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return "", err
	}
	out := collectText(resp)
	if out == "" {
		return "", errors.New("empty model response")
	}
	return out, nil
}

func (v *VertexGemini) GenerateJSON(ctx context.Context, prompt string, out any) error {
	resp, err := v.jsonModel.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return err
	}
	raw := collectText(resp)
	if raw == "" {
		return errors.New("empty model response")
	}
	return json.Unmarshal([]byte(stripFences(raw)), out)
}

func (v *VertexGemini) Embed(ctx context.Context, text string) ([]float32, error) {
	inst, err := structpb.NewStruct(map[string]any{"content": text})
	if err != nil {
		return nil, err
	}

	resp, err := v.predictor.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.embedEndpoint,
		Instances: []*structpb.Value{structpb.NewStructValue(inst)},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 {
		return nil, errors.New("empty embedding response")
	}

	emb := resp.Predictions[0].GetStructValue().GetFields()["embeddings"].GetStructValue()
	if emb == nil {
		return nil, errors.New("malformed embedding response")
	}
	vals := emb.GetFields()["values"].GetListValue().GetValues()
	if len(vals) == 0 {
		return nil, errors.New("empty embedding response")
	}

	out := make([]float32, 0, len(vals))
	for _, val := range vals {
		out = append(out, float32(val.GetNumberValue()))
	}
	return out, nil
}

func (v *VertexGemini) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, 32)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		it := v.model.GenerateContentStream(ctx, vertexgenai.Text(prompt))
		for {
			resp, err := it.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				errs <- err
				return
			}

			for _, cand := range resp.Candidates {
				if cand.Content == nil {
					continue
				}
				for _, part := range cand.Content.Parts {
					if t, ok := part.(vertexgenai.Text); ok && string(t) != "" {
						out <- string(t)
					}
				}
			}
		}
	}()

	return out, errs
}

func collectText(resp *vertexgenai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
