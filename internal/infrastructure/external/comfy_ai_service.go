package external

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/richinsley/comfy2go/client"
	"github.com/richinsley/comfy2go/graphapi"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/valueobjects"
)

// Node titles expected in the "API" group of the exported workflows.
const (
	comfyPositiveTitle  = "Positive"
	comfySeedTitle      = "Seed"
	comfyDenoiseTitle   = "Denoise"
	comfyLoadImageTitle = "Load Image"
)

// ComfyAIService runs Stable Diffusion workflows on a ComfyUI server.
type ComfyAIService struct {
	client          *client.ComfyClient
	txt2imgWorkflow string
	img2imgWorkflow string

	// ComfyClientのキュー管理はスレッドセーフではないため直列化する
	mu sync.Mutex
}

func NewComfyAIService(address string, port int, txt2imgWorkflow, img2imgWorkflow string, httpClient *http.Client) *ComfyAIService {
	callbacks := &client.ComfyClientCallbacks{
		ClientQueueCountChanged: func(c *client.ComfyClient, queuecount int) {
			slog.Debug("ComfyQueue", "clientID", c.ClientID(), "queueCount", queuecount)
		},
	}

	c := client.NewComfyClient(address, port, callbacks)
	if httpClient != nil {
		c.SetHttpClient(httpClient)
	}

	return &ComfyAIService{
		client:          c,
		txt2imgWorkflow: txt2imgWorkflow,
		img2imgWorkflow: img2imgWorkflow,
	}
}

func (s *ComfyAIService) GenerateImage(ctx context.Context, request *entities.TextToImageRequest) (*valueobjects.ImageData, error) {
	graph, err := s.loadWorkflow(s.txt2imgWorkflow)
	if err != nil {
		return nil, err
	}

	api := graph.GetSimpleAPI()
	if err := setProperty(api, comfyPositiveTitle, outfitImagePrompt(request.Prompt()), true); err != nil {
		return nil, err
	}
	if err := setProperty(api, comfySeedTitle, rand.IntN(1<<30), false); err != nil {
		return nil, err
	}

	slog.Info("GenerateImage", "backend", "comfyui", "workflow", s.txt2imgWorkflow, "index", request.Index())
	return s.run(ctx, graph)
}

func (s *ComfyAIService) GenerateVariation(ctx context.Context, request *entities.ImageToImageRequest) (*valueobjects.ImageData, error) {
	graph, err := s.loadWorkflow(s.img2imgWorkflow)
	if err != nil {
		return nil, err
	}

	source := request.Source()
	if source == nil {
		loaded, err := valueobjects.LoadImageData(request.SourcePath())
		if err != nil {
			return nil, err
		}
		source = loaded
	}

	if err := s.uploadSource(graph, request.SourcePath(), source); err != nil {
		return nil, err
	}

	api := graph.GetSimpleAPI()
	if err := setProperty(api, comfyPositiveTitle, outfitImagePrompt(request.Prompt()), true); err != nil {
		return nil, err
	}
	if err := setProperty(api, comfyDenoiseTitle, request.Strength(), false); err != nil {
		return nil, err
	}
	if err := setProperty(api, comfySeedTitle, rand.IntN(1<<30), false); err != nil {
		return nil, err
	}

	slog.Info("GenerateVariation", "backend", "comfyui", "workflow", s.img2imgWorkflow, "index", request.Index())
	return s.run(ctx, graph)
}

func (s *ComfyAIService) Close() error {
	return nil
}

func (s *ComfyAIService) ensureInitialized() error {
	if s.client.IsInitialized() {
		return nil
	}
	if err := s.client.Init(); err != nil {
		return fmt.Errorf("failed to connect to ComfyUI: %w", err)
	}
	return nil
}

func (s *ComfyAIService) loadWorkflow(path string) (*graphapi.Graph, error) {
	if path == "" {
		return nil, fmt.Errorf("no ComfyUI workflow configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	graph, missing, err := s.client.NewGraphFromJsonFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow %s: %w", path, err)
	}
	if missing != nil && len(*missing) > 0 {
		return nil, fmt.Errorf("workflow %s uses node types missing on the server: %v", path, *missing)
	}
	return graph, nil
}

func (s *ComfyAIService) uploadSource(graph *graphapi.Graph, sourcePath string, source *valueobjects.ImageData) error {
	node := graph.GetFirstNodeWithTitle(comfyLoadImageTitle)
	if node == nil {
		return fmt.Errorf("workflow has no %q node", comfyLoadImageTitle)
	}

	prop := node.GetPropertyWithName("choose file to upload")
	if prop == nil {
		return fmt.Errorf("missing property \"choose file to upload\"")
	}
	uploadProp, ok := prop.ToImageUploadProperty()
	if !ok {
		return fmt.Errorf("property \"choose file to upload\" is not an image upload")
	}

	filename := filepath.Base(sourcePath)
	if sourcePath == "" {
		filename = "clothing" + source.Extension()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.client.UploadFileFromReader(bytes.NewReader(source.Data()), filename, false, client.InputImageType, "", uploadProp); err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	return nil
}

func (s *ComfyAIService) run(ctx context.Context, graph *graphapi.Graph) (*valueobjects.ImageData, error) {
	s.mu.Lock()
	item, err := s.client.QueuePrompt(graph)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to queue prompt: %w", err)
	}

	var result *valueobjects.ImageData
	for {
		select {
		case <-ctx.Done():
			if err := s.client.Interrupt(); err != nil {
				slog.Warn("ComfyInterrupt", "error", err)
			}
			// 停止メッセージまで読み捨てないとwebsocket側がブロックする
			go drainUntilStopped(item)
			return nil, ctx.Err()

		case msg := <-item.Messages:
			switch msg.Type {
			case "stopped":
				stopped := msg.ToPromptMessageStopped()
				if stopped.Exception != nil {
					return nil, fmt.Errorf("workflow failed in node %s: %s",
						stopped.Exception.NodeType, stopped.Exception.ExceptionMessage)
				}
				if result == nil {
					return nil, fmt.Errorf("workflow produced no image")
				}
				return result, nil

			case "data":
				if result != nil {
					continue
				}
				data := msg.ToPromptMessageData()
				for _, output := range data.Data["images"] {
					imageBytes, err := s.client.GetImage(output)
					if err != nil {
						return nil, fmt.Errorf("failed to get image: %w", err)
					}
					result, err = valueobjects.NewImageData(*imageBytes, "")
					if err != nil {
						return nil, fmt.Errorf("failed to create image data: %w", err)
					}
					break
				}
			}
		}
	}
}

func drainUntilStopped(item *client.QueueItem) {
	for msg := range item.Messages {
		if msg.Type == "stopped" {
			return
		}
	}
}

func setProperty(api *graphapi.SimpleAPI, title string, value interface{}, required bool) error {
	prop, ok := api.Properties[title]
	if !ok || prop == nil {
		if required {
			return fmt.Errorf("workflow API group has no %q node", title)
		}
		return nil
	}
	if err := prop.SetValue(value); err != nil {
		return fmt.Errorf("failed to set %s: %w", title, err)
	}
	return nil
}

// WorkflowExists reports whether a workflow file is present, for startup checks.
func WorkflowExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
