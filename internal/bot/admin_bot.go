package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/logger"
	"arctic_mining/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminBot gives the operator a chat-side surface for the same privileged
// operations the admin HTTP routes expose: listing accounts, crediting,
// reviewing deposit claims and banning.
type AdminBot struct {
	bot      *tgbotapi.BotAPI
	admin    *service.AdminService
	deposits *service.DepositService
	chatIDs  []int64 // Telegram user IDs allowed to issue commands
	stopCh   chan struct{}
	wg       sync.WaitGroup
	log      *slog.Logger
}

func NewAdminBot(token string, db *pgxpool.Pool, chatIDs []int64) (*AdminBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "admin_bot")
	log.Info("admin bot authorized", "username", api.Self.UserName)

	return &AdminBot{
		bot:      api,
		admin:    service.NewAdminService(db),
		deposits: service.NewDepositService(db, nil),
		chatIDs:  chatIDs,
		stopCh:   make(chan struct{}),
		log:      log,
	}, nil
}

// Start runs the update loop until Stop is called.
func (b *AdminBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.isAdmin(update.Message.From.ID) {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleCommand(msg)
			}(update.Message)
		}
	}
}

// Stop gracefully stops the bot.
func (b *AdminBot) Stop() {
	b.log.Info("stopping admin bot...")
	close(b.stopCh)
	b.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("admin bot stopped gracefully")
	case <-time.After(10 * time.Second):
		b.log.Warn("admin bot shutdown timeout, some handlers may not have completed")
	}
}

func (b *AdminBot) isAdmin(userID int64) bool {
	for _, id := range b.chatIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *AdminBot) handleCommand(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.reply(msg, "Commands:\n"+
			"/users — list accounts\n"+
			"/deposits — pending deposit claims\n"+
			"/credit <user> <amount> [buy|wdr] — credit an account\n"+
			"/approve <user> <deposit_id> — approve a claim\n"+
			"/reject <user> <deposit_id> — reject a claim\n"+
			"/ban <user> — delete an account")
	case "users":
		b.listUsers(ctx, msg)
	case "deposits":
		b.listPendingDeposits(ctx, msg)
	case "credit":
		b.credit(ctx, msg, args)
	case "approve":
		b.review(ctx, msg, args, service.DepositApprove)
	case "reject":
		b.review(ctx, msg, args, service.DepositReject)
	case "ban":
		b.ban(ctx, msg, args)
	}
}

func (b *AdminBot) listUsers(ctx context.Context, msg *tgbotapi.Message) {
	users, err := b.admin.ListAccounts(ctx)
	if err != nil {
		b.reply(msg, "error: "+err.Error())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d accounts\n", len(users))
	for _, u := range users {
		fmt.Fprintf(&sb, "• %s — bal %.2f / wdr %.2f / VIP %d\n",
			u.Username, u.Balance, u.WithdrawalBalance, u.VIPLevel)
	}
	b.reply(msg, sb.String())
}

func (b *AdminBot) listPendingDeposits(ctx context.Context, msg *tgbotapi.Message) {
	users, err := b.admin.ListAccounts(ctx)
	if err != nil {
		b.reply(msg, "error: "+err.Error())
		return
	}

	var sb strings.Builder
	count := 0
	for _, u := range users {
		for _, d := range u.Deposits {
			if d.Status != domain.DepositPending {
				continue
			}
			count++
			fmt.Fprintf(&sb, "• %s — %.2f € (tx %s)\n  id: %s\n", u.Username, d.Amount, d.TxID, d.ID)
		}
	}
	if count == 0 {
		b.reply(msg, "no pending deposits")
		return
	}
	b.reply(msg, fmt.Sprintf("%d pending deposits\n%s", count, sb.String()))
}

func (b *AdminBot) credit(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) < 2 {
		b.reply(msg, "usage: /credit <user> <amount> [buy|wdr]")
		return
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		b.reply(msg, "bad amount")
		return
	}

	target := service.CreditBalance
	if len(args) > 2 && args[2] == "wdr" {
		target = service.CreditWithdrawal
	}

	if err := b.admin.Credit(ctx, args[0], amount, target); err != nil {
		b.reply(msg, "error: "+err.Error())
		return
	}
	b.reply(msg, fmt.Sprintf("credited %.2f to %s", amount, args[0]))
}

func (b *AdminBot) review(ctx context.Context, msg *tgbotapi.Message, args []string, action service.DepositAction) {
	if len(args) < 2 {
		b.reply(msg, fmt.Sprintf("usage: /%s <user> <deposit_id>", action))
		return
	}
	if err := b.deposits.Review(ctx, args[0], args[1], action); err != nil {
		b.reply(msg, "error: "+err.Error())
		return
	}
	b.reply(msg, fmt.Sprintf("deposit %s: %s", args[1], action))
}

func (b *AdminBot) ban(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) < 1 {
		b.reply(msg, "usage: /ban <user>")
		return
	}
	if err := b.admin.Ban(ctx, args[0]); err != nil {
		b.reply(msg, "error: "+err.Error())
		return
	}
	b.reply(msg, args[0]+" deleted")
}

func (b *AdminBot) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	if _, err := b.bot.Send(reply); err != nil {
		b.log.Error("failed to send message", "error", err)
	}
}
