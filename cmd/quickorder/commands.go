package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/config"
	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/sheets"
	"github.com/bacdepzai/orderdesk/pkg/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type options struct {
	file             string
	webhook          string
	confirmBelowCost bool
	dryRun           bool

	cfg *config.Config
	now service.Clock
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:          "quickorder",
		Short:        "Quote and submit print-supply orders from a JSON file",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.cfg == nil {
				opts.cfg = config.Load()
			}
			if opts.now == nil {
				opts.now = service.SystemClock(opts.cfg.App.Location())
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "-", "order JSON file, - for stdin")

	root.AddCommand(newQuoteCmd(opts), newSubmitCmd(opts))
	return root
}

func newQuoteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print the quotation text of an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.load(cmd)
			if err != nil {
				return err
			}
			text, err := service.ShareText(snap)
			if err != nil {
				return explain(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newSubmitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate an order and post it to the spreadsheet web-hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := service.RequireFinalizable(snap); err != nil {
				return explain(cmd, err)
			}
			if snap.Validation.HasPriceWarning && !opts.confirmBelowCost {
				return explain(cmd, apperror.ErrBelowCostConfirm)
			}

			printTotals(cmd.OutOrStdout(), snap)
			if opts.dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run: nothing was sent")
				return nil
			}

			webhook := opts.webhook
			if webhook == "" {
				webhook = opts.cfg.Sheets.WebhookURL
			}
			client := sheets.NewClient(webhook, opts.cfg.Sheets.Timeout)

			snap.Order.ID = uuid.New()
			snap.Order.CreatedAt = opts.now()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := client.PushOrder(ctx, &service.SyncPayload{Order: snap.Order, Totals: snap.Totals}); err != nil {
				return fmt.Errorf("submit order: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted order %s\n", snap.Order.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.webhook, "webhook", "", "web-hook URL, overrides SHEETS_WEBHOOK_URL")
	cmd.Flags().BoolVar(&opts.confirmBelowCost, "confirm-below-cost", false, "submit even when a line is priced below its import price")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and print totals without posting")
	return cmd
}

func (o *options) load(cmd *cobra.Command) (*service.OrderSnapshot, error) {
	var r io.Reader = cmd.InOrStdin()
	if o.file != "-" {
		f, err := os.Open(o.file)
		if err != nil {
			return nil, fmt.Errorf("open order file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return loadOrder(r, pricing.NewClassifier(o.cfg.Pricing.AreaKeywords), o.now())
}

// loadOrder decodes an order and fills what a hand-written file usually
// leaves out: the date, item identities and units. Modes always come from
// the item names; a mode written in the file is ignored.
func loadOrder(r io.Reader, classifier *pricing.Classifier, today time.Time) (*service.OrderSnapshot, error) {
	var order entity.Order
	if err := json.NewDecoder(r).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if len(order.Items) == 0 {
		return nil, apperror.ErrLastItem
	}

	order.ID = uuid.Nil
	order.CreatedAt = time.Time{}
	if order.Date == "" {
		order.Date = today.Format(entity.DateLayout)
	}
	pricing.CoerceOrder(&order)
	classifier.Reclassify(&order)
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.Unit == "" {
			item.Unit = entity.DefaultUnit
			if pricing.ModeOf(*item) == enum.PricingModeArea {
				item.Unit = entity.AreaUnit
			}
		}
	}
	return service.NewSnapshot(&order), nil
}

func printTotals(w io.Writer, snap *service.OrderSnapshot) {
	t := snap.Totals
	fmt.Fprintf(w, "Khách hàng: %s\n", snap.Order.DisplayCustomer())
	fmt.Fprintf(w, "Số dòng: %d\n", len(snap.Order.Items))
	fmt.Fprintf(w, "Tạm tính: %s\n", utils.FormatVND(t.Subtotal))
	if t.DiscountAmount > 0 {
		fmt.Fprintf(w, "Chiết khấu: %s\n", utils.FormatVND(t.DiscountAmount))
	}
	fmt.Fprintf(w, "Tổng thanh toán: %s\n", utils.FormatVND(t.GrandTotal))
	fmt.Fprintf(w, "Lợi nhuận: %s\n", utils.FormatVND(t.Profit))
}

// explain prints field errors under the message and returns the error.
func explain(cmd *cobra.Command, err error) error {
	appErr := apperror.GetAppError(err)
	for _, fe := range appErr.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
	}
	return appErr
}
