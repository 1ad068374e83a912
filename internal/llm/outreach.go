// Package llm - outreach.go drafts and refines cold outreach messages.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Outreach style and length settings carried on templates and requests.
const (
	StyleProfessional = "professional"
	StyleSemiFormal   = "semi_formal"
	StyleCasual       = "casual"
	StyleFriend       = "friend"

	LengthShort = "short"
	LengthLong  = "long"
)

const (
	shortCharLimit = 300
	longCharLimit  = 600
)

var styleGuidance = map[string]string{
	StyleProfessional: "Use formal, professional language. Be respectful and business-like.",
	StyleSemiFormal:   "Use a friendly but professional tone. Balance warmth with professionalism.",
	StyleCasual:       "Use a relaxed, conversational tone. Be friendly and approachable.",
	StyleFriend:       "Write as if messaging a friend. Be warm, casual, and genuine.",
}

var lengthGuidance = map[string]string{
	LengthShort: "Keep the message concise, around 3-5 sentences. Get to the point quickly.",
	LengthLong:  "Write a more detailed message, around 6-10 sentences. Include more context and personalization.",
}

// Drafter generates outreach messages grounded in the sender's resume.
// Callers assemble the resume context and thread history; the drafter only
// builds prompts and talks to the model.
type Drafter struct {
	client Client
}

func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client}
}

// DraftRequest describes an initial outreach message to generate.
type DraftRequest struct {
	TemplateContent   string
	Style             string
	Length            string
	Company           string
	ContactName       string
	ResumeContext     string
	AdditionalContext string
}

// ReplyRequest describes a reply to an ongoing thread.
type ReplyRequest struct {
	History       string
	ResumeContext string
	Company       string
	ContactName   string
	Style         string
	Length        string
	Instructions  string
}

// Draft holds a generated message and its length.
type Draft struct {
	Message   string `json:"message"`
	CharCount int    `json:"char_count"`
}

// DraftInitial generates a first-contact message from a template.
func (d *Drafter) DraftInitial(ctx context.Context, req DraftRequest) (*Draft, error) {
	var sb strings.Builder
	sb.WriteString("You are helping craft a personalized cold outreach message.\n\n")
	sb.WriteString("**TEMPLATE TO FOLLOW:**\n")
	sb.WriteString(req.TemplateContent)
	sb.WriteString("\n\n**STYLE:** " + req.Style + "\n")
	sb.WriteString(guidanceFor(styleGuidance, req.Style, StyleProfessional) + "\n\n")
	sb.WriteString("**LENGTH:** " + req.Length + "\n")
	sb.WriteString(guidanceFor(lengthGuidance, req.Length, LengthShort) + "\n\n")
	sb.WriteString("**TARGET:**\n")
	sb.WriteString("- Company: " + req.Company + "\n")
	sb.WriteString("- Contact: " + orUnknown(req.ContactName) + "\n\n")
	sb.WriteString("**SENDER'S BACKGROUND (use relevant details to personalize):**\n")
	sb.WriteString(req.ResumeContext)
	sb.WriteString("\n\n")
	if req.AdditionalContext != "" {
		sb.WriteString("**ADDITIONAL CONTEXT:**\n" + req.AdditionalContext + "\n\n")
	}
	sb.WriteString(`**INSTRUCTIONS:**
1. Follow the template structure but personalize it based on the sender's background
2. Make specific references to the sender's experience that would be relevant to the company
3. Keep the tone consistent with the style setting
4. Do not use generic phrases like "I'm excited" or "I'm passionate" - be specific
5. Output ONLY the message text, no explanations or alternatives

**GENERATE THE MESSAGE:**`)

	return d.generate(ctx, sb.String(), req.Length)
}

// DraftReply generates the next message in an ongoing conversation.
func (d *Drafter) DraftReply(ctx context.Context, req ReplyRequest) (*Draft, error) {
	var sb strings.Builder
	sb.WriteString("You are helping write a reply in an ongoing job-related conversation.\n\n")
	sb.WriteString("**CONVERSATION HISTORY:**\n")
	sb.WriteString(req.History)
	sb.WriteString("\n\n**YOUR BACKGROUND:**\n")
	sb.WriteString(req.ResumeContext)
	sb.WriteString("\n\n**COMPANY:** " + req.Company + "\n")
	sb.WriteString("**CONTACT:** " + orUnknown(req.ContactName) + "\n\n")
	sb.WriteString("**STYLE:** " + guidanceFor(styleGuidance, req.Style, StyleSemiFormal) + "\n")
	sb.WriteString(fmt.Sprintf("**MAX LENGTH:** %d characters\n\n", charLimit(req.Length)))
	if req.Instructions != "" {
		sb.WriteString("**SPECIFIC INSTRUCTIONS FROM USER:**\n" + req.Instructions + "\n\n")
	}
	sb.WriteString(`**INSTRUCTIONS:**
1. Write a natural reply that continues the conversation
2. Reference your background if relevant to what they asked
3. Be helpful and move toward your goal (getting a referral, interview, info)
4. Match the conversation's energy while staying within your style
5. Keep it concise and actionable
6. Output ONLY the reply text, no explanations or preamble

**YOUR REPLY:**`)

	return d.generate(ctx, sb.String(), req.Length)
}

// Refine rewrites an existing message per the user's instructions.
func (d *Drafter) Refine(ctx context.Context, original, instructions, style, length string) (*Draft, error) {
	var sb strings.Builder
	sb.WriteString("You are helping refine a cold outreach message.\n\n")
	sb.WriteString("**ORIGINAL MESSAGE:**\n" + original + "\n\n")
	sb.WriteString("**REFINEMENT INSTRUCTIONS:**\n" + instructions + "\n\n")
	sb.WriteString("**CONSTRAINTS:**\n")
	if style != "" {
		sb.WriteString("- Style: " + style + "\n")
	} else {
		sb.WriteString("- Style: maintain current style\n")
	}
	sb.WriteString(fmt.Sprintf("- Maximum length: %d characters (STRICT for short messages)\n\n", charLimit(length)))
	sb.WriteString(`**INSTRUCTIONS:**
1. Apply the refinement instructions to improve the message
2. Keep the core intent and personalization unless specifically asked to change it
3. Maintain any specific details about the person's background
4. Output ONLY the refined message text, no explanations or preamble

**REFINED MESSAGE:**`)

	return d.generate(ctx, sb.String(), length)
}

// ParsedMessage is one message recovered from a pasted conversation dump.
type ParsedMessage struct {
	Direction string  `json:"direction"`
	Content   string  `json:"content"`
	MessageAt *string `json:"message_at"`
}

// ParsedConversation is the result of splitting a raw conversation dump.
// When parsing fails, RawFallback carries the original text so nothing is
// lost.
type ParsedConversation struct {
	Success     bool            `json:"success"`
	Messages    []ParsedMessage `json:"messages"`
	RawFallback *string         `json:"raw_fallback"`
}

// ParseConversation splits a pasted conversation into directed messages.
func (d *Drafter) ParseConversation(ctx context.Context, rawText string) (*ParsedConversation, error) {
	prompt := fmt.Sprintf(`Parse this conversation into individual messages. For each message, determine:
1. Direction: "sent" (from the job seeker/user) or "received" (from the recruiter/contact)
2. Content: the message text (clean it up, remove timestamps from the text itself)
3. Timestamp: if visible in the conversation (format: ISO 8601, e.g., "2026-01-15T14:30:00")

**CONVERSATION TO PARSE:**
%s

**INSTRUCTIONS:**
- Look for patterns like "Me:", "Them:", timestamps, or indentation to determine direction
- If you see names, the first message sender is usually "sent" (the user reaching out)
- Clean up the message content (remove leading timestamps, names, etc.)
- If no clear timestamp, set message_at to null

**RESPOND IN THIS EXACT JSON FORMAT (no markdown, no code blocks):**
{"messages": [{"direction": "sent", "content": "message text here", "message_at": "2026-01-15T14:30:00"}]}

If you cannot parse the conversation at all, respond with:
{"error": "Could not parse conversation"}`, rawText)

	response, err := d.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Messages []ParsedMessage `json:"messages"`
		Error    string          `json:"error"`
	}
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &parsed); err != nil || parsed.Error != "" {
		return &ParsedConversation{Success: false, Messages: []ParsedMessage{}, RawFallback: &rawText}, nil
	}

	return &ParsedConversation{Success: true, Messages: parsed.Messages}, nil
}

func (d *Drafter) generate(ctx context.Context, prompt, length string) (*Draft, error) {
	text, err := d.client.GenerateContent(ctx, prompt, TierStandard)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(text)
	if length == LengthShort && len(message) > shortCharLimit {
		message = message[:shortCharLimit-3] + "..."
	}
	return &Draft{Message: message, CharCount: len(message)}, nil
}

func charLimit(length string) int {
	if length == LengthShort {
		return shortCharLimit
	}
	return longCharLimit
}

func guidanceFor(table map[string]string, key, fallback string) string {
	if guidance, ok := table[key]; ok {
		return guidance
	}
	return table[fallback]
}

func orUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
