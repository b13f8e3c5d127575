package grpc

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/velopago/riskengine/internal/application/dto"
	"github.com/velopago/riskengine/internal/application/usecase"
	"github.com/velopago/riskengine/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	assessTransaction *usecase.AssessTransaction
	authRequired      bool
	logger            *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler. When authRequired is
// false (no JWT service configured on the server) role checks are skipped
// entirely; otherwise every call must carry claims with an accepted role.
func NewRiskServiceHandler(assessTransaction *usecase.AssessTransaction, authRequired bool, logger *slog.Logger) *RiskServiceHandler {
	if !authRequired {
		logger.Warn("role checks disabled, assess requests are accepted without claims")
	}
	return &RiskServiceHandler{
		assessTransaction: assessTransaction,
		authRequired:      authRequired,
		logger:            logger,
	}
}

// Proto-aligned request/response message types.

// AssessTransactionRequest represents the proto AssessTransactionRequest message.
// Every signal field is optional: absent fields take the engine's documented
// defaults. Hour is a pointer because 0 (midnight) is a meaningful value.
type AssessTransactionRequest struct {
	TransactionID         string `json:"transaction_id"`
	AmountMXN             string `json:"amount_mxn"`
	ProductType           string `json:"product_type"`
	IPRisk                string `json:"ip_risk"`
	EmailRisk             string `json:"email_risk"`
	DeviceFingerprintRisk string `json:"device_fingerprint_risk"`
	UserReputation        string `json:"user_reputation"`
	Hour                  *int32 `json:"hour"`
	BINCountry            string `json:"bin_country"`
	IPCountry             string `json:"ip_country"`
	ChargebackCount       int32  `json:"chargeback_count"`
	LatencyMS             int32  `json:"latency_ms"`
	CustomerTxn30d        int32  `json:"customer_txn_30d"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	ID            string   `json:"id"`
	TransactionID string   `json:"transaction_id"`
	Amount        string   `json:"amount"`
	ProductType   string   `json:"product_type"`
	Decision      string   `json:"decision"`
	RiskScore     int32    `json:"risk_score"`
	Reasons       []string `json:"reasons"`
	HardBlocked   bool     `json:"hard_blocked"`
}

// AssessTransactionResponse represents the proto AssessTransactionResponse message.
type AssessTransactionResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// record converts the message to the boundary record format. Only fields the
// caller actually supplied are included so the engine's defaults apply to the
// rest.
func (r *AssessTransactionRequest) record() map[string]string {
	record := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			record[key] = value
		}
	}
	put("amount_mxn", r.AmountMXN)
	put("product_type", r.ProductType)
	put("ip_risk", r.IPRisk)
	put("email_risk", r.EmailRisk)
	put("device_fingerprint_risk", r.DeviceFingerprintRisk)
	put("user_reputation", r.UserReputation)
	put("bin_country", r.BINCountry)
	put("ip_country", r.IPCountry)
	if r.Hour != nil {
		record["hour"] = strconv.Itoa(int(*r.Hour))
	}
	if r.ChargebackCount != 0 {
		record["chargeback_count"] = strconv.Itoa(int(r.ChargebackCount))
	}
	if r.LatencyMS != 0 {
		record["latency_ms"] = strconv.Itoa(int(r.LatencyMS))
	}
	if r.CustomerTxn30d != 0 {
		record["customer_txn_30d"] = strconv.Itoa(int(r.CustomerTxn30d))
	}
	return record
}

// AssessTransaction handles a transaction assessment request.
func (h *RiskServiceHandler) AssessTransaction(ctx context.Context, req *AssessTransactionRequest) (*AssessTransactionResponse, error) {
	if h.authRequired {
		if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
			return nil, err
		}
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid transaction_id: %v", err)
	}

	h.logger.Info("assessing transaction",
		slog.String("transaction_id", transactionID.String()),
	)

	result, err := h.assessTransaction.Execute(ctx, dto.AssessTransactionRequest{
		TransactionID: transactionID,
		Record:        req.record(),
	})
	if err != nil {
		h.logger.Error("failed to assess transaction",
			slog.String("transaction_id", transactionID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	assessmentsTotal.WithLabelValues(result.Decision).Inc()
	if result.HardBlocked {
		hardBlocksTotal.Inc()
	}

	return &AssessTransactionResponse{
		Assessment: &AssessmentMsg{
			ID:            result.ID.String(),
			TransactionID: result.TransactionID.String(),
			Amount:        result.Amount,
			ProductType:   result.ProductType,
			Decision:      result.Decision,
			RiskScore:     int32(result.RiskScore),
			Reasons:       result.Reasons,
			HardBlocked:   result.HardBlocked,
		},
	}, nil
}
