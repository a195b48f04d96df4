package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/gemini"
	"github.com/bacdepzai/orderdesk/pkg/utils"
)

const (
	assistantFallbackReply = "Xin lỗi, tôi gặp sự cố khi xử lý câu hỏi này."
	assistantNetworkError  = "Đã có lỗi xảy ra khi kết nối với trợ lý AI. Vui lòng kiểm tra kết nối mạng."
	hiddenValue            = "hidden"
)

// ContentGenerator produces a model reply.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *gemini.GenerateRequest) (string, error)
	Configured() bool
}

// ChatMessage is one turn of the assistant transcript
type ChatMessage struct {
	Role      string    `json:"role"` // user or model
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AssistantService answers questions about the current draft and, for the
// owner, the month's figures.
type AssistantService struct {
	mu         sync.Mutex
	generator  ContentGenerator
	drafts     *DraftService
	stats      *StatsService
	shopName   string
	maxHistory int
	history    []ChatMessage
}

// NewAssistantService creates a new assistant service
func NewAssistantService(generator ContentGenerator, drafts *DraftService, stats *StatsService, shopName string, maxHistory int) *AssistantService {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &AssistantService{
		generator:  generator,
		drafts:     drafts,
		stats:      stats,
		shopName:   shopName,
		maxHistory: maxHistory,
	}
}

type assistantOrderContext struct {
	Customer string      `json:"customer"`
	Total    float64     `json:"total"`
	Items    []string    `json:"items"`
	Profit   interface{} `json:"profit"`
}

type assistantContext struct {
	CurrentOrder assistantOrderContext `json:"currentOrder"`
	Stats        interface{}           `json:"stats"`
	Role         enum.Role             `json:"role"`
}

func (s *AssistantService) buildContext(ctx context.Context, role enum.Role) (*assistantContext, error) {
	snap, err := s.drafts.Get(ctx)
	if err != nil {
		return nil, err
	}

	c := &assistantContext{
		CurrentOrder: assistantOrderContext{
			Customer: snap.Order.CustomerName,
			Total:    snap.Totals.GrandTotal,
			Items:    make([]string, 0, len(snap.Order.Items)),
			Profit:   hiddenValue,
		},
		Stats: hiddenValue,
		Role:  role,
	}
	for _, item := range snap.Order.Items {
		c.CurrentOrder.Items = append(c.CurrentOrder.Items,
			fmt.Sprintf("%s (%s)", item.Name, strings.TrimSpace(utils.FormatQty(item.Quantity)+" "+item.Unit)))
	}

	if role.IsOwner() {
		c.CurrentOrder.Profit = snap.Totals.Profit
		if stats, err := s.stats.Monthly(ctx, role, ""); err == nil {
			c.Stats = stats
		} else {
			log.Printf("Assistant stats unavailable: %v", err)
		}
	}
	return c, nil
}

func (s *AssistantService) systemInstruction(c *assistantContext) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bạn là trợ lý AI thông minh cho cửa hàng %q chuyên vật tư in nhanh.\n", s.shopName)
	b.WriteString("- Bạn trả lời bằng tiếng Việt thân thiện, chuyên nghiệp.\n")
	fmt.Fprintf(&b, "- Bạn biết dữ liệu đơn hàng hiện tại: %s.\n", data)
	b.WriteString("- Nếu là nhân viên (SALE), hãy giúp họ soạn tin nhắn chào khách, tư vấn kích thước giấy.\n")
	b.WriteString("- Nếu là chủ shop (OWNER), hãy phân tích lợi nhuận, gợi ý giảm giá hoặc tăng năng suất.\n")
	b.WriteString("- Hãy trả lời ngắn gọn, súc tích, đi thẳng vào vấn đề.")
	return b.String(), nil
}

// Ask sends prompt with the recent transcript and returns the reply. A
// failed call leaves the transcript and the draft untouched.
func (s *AssistantService) Ask(ctx context.Context, role enum.Role, prompt string) (*ChatMessage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "prompt", Message: "Prompt is required"}})
	}
	if s.generator == nil || !s.generator.Configured() {
		return nil, apperror.ErrAssistantDisabled
	}

	aCtx, err := s.buildContext(ctx, role)
	if err != nil {
		return nil, err
	}
	instruction, err := s.systemInstruction(aCtx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	s.mu.Lock()
	contents := make([]gemini.Content, 0, len(s.history)+1)
	for _, m := range s.history {
		contents = append(contents, gemini.Content{Role: m.Role, Parts: []gemini.Part{{Text: m.Text}}})
	}
	s.mu.Unlock()
	contents = append(contents, gemini.Content{Role: "user", Parts: []gemini.Part{{Text: prompt}}})

	reply, err := s.generator.GenerateContent(ctx, &gemini.GenerateRequest{
		Contents:          contents,
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: instruction}}},
	})
	if err != nil {
		log.Printf("Assistant error: %v", err)
		return nil, apperror.NewEnvironmentError(assistantNetworkError)
	}
	if strings.TrimSpace(reply) == "" {
		reply = assistantFallbackReply
	}

	now := time.Now()
	answer := ChatMessage{Role: "model", Text: reply, CreatedAt: now}

	s.mu.Lock()
	s.history = append(s.history, ChatMessage{Role: "user", Text: prompt, CreatedAt: now}, answer)
	if over := len(s.history) - s.maxHistory; over > 0 {
		over += over % 2 // keep user/model pairs together
		if over > len(s.history) {
			over = len(s.history)
		}
		s.history = append([]ChatMessage(nil), s.history[over:]...)
	}
	s.mu.Unlock()

	return &answer, nil
}

// History returns a copy of the transcript, oldest first.
func (s *AssistantService) History() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory drops the transcript.
func (s *AssistantService) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
