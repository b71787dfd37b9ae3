package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"banexport/review"
	"banexport/state"
)

// Setup wires the gateway handlers. Call before opening the session.
func Setup() {
	state.Discord.AddHandler(onReady)
	state.Discord.AddHandler(onInteractionCreate)
}

func onReady(_ *discordgo.Session, r *discordgo.Ready) {
	state.Logger.Info("Logged in", zap.String("user", r.User.Username))
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "exportoldbans":
			exportOldBansCommand(s, i)
		case "ban":
			banCommand(s, i)
		case "unban":
			unbanCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		componentInteraction(s, i)
	}
}

// componentInteraction routes a button click to the review session for
// its ban id and reflects the outcome back onto the message.
func componentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, banID, ok := parseCustomID(i.MessageComponentData().CustomID)

	if !ok {
		return
	}

	user := interactionUser(i)

	if user == nil {
		return
	}

	event, err := state.Registry.Dispatch(state.Context, banID, action, user.ID)

	if err != nil {
		// Expired and reaped sessions stop accepting input without
		// comment; rejected transitions get an ephemeral notice
		if errors.Is(err, review.ErrExpired) || errors.Is(err, review.ErrUnknownSession) {
			ackSilently(s, i)
			return
		}

		respondEphemeral(s, i, "❗ "+capitalize(err.Error()))
		return
	}

	switch event {
	case review.EventClaimed:
		updateMessage(s, i, "", banButtons(banID, user.Username))
	case review.EventUnclaimed:
		updateMessage(s, i, "", banButtons(banID, ""))
	case review.EventPassed:
		updateMessage(s, i, "🟢 Audit passed: Thread closed.", []discordgo.MessageComponent{})
	case review.EventFailed:
		updateMessage(s, i, "🔴 Audit failed: User has been unbanned and thread closed.", []discordgo.MessageComponent{})
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}

	return i.User
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}

	return string(s[0]-'a'+'A') + s[1:]
}

func ackSilently(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})

	if err != nil {
		state.Logger.Warn("Failed to acknowledge interaction", zap.Error(err))
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})

	if err != nil {
		state.Logger.Warn("Failed to respond to interaction", zap.Error(err))
	}
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})

	if err != nil {
		state.Logger.Warn("Failed to defer interaction", zap.Error(err))
	}
}

func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	data := &discordgo.InteractionResponseData{
		Components: components,
	}

	if content != "" {
		data.Content = content
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})

	if err != nil {
		state.Logger.Warn("Failed to update interaction message", zap.Error(err))
	}
}

func editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})

	if err != nil {
		state.Logger.Warn("Failed to edit interaction reply", zap.Error(err))
	}
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})

	if err != nil {
		state.Logger.Warn("Failed to send follow-up", zap.Error(err))
	}
}
