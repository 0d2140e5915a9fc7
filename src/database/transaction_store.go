package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

const transactionColumns = `id, team_id, fecha_operacion, fecha_captacion, fecha_reserva,
	direccion_reserva, numero_casa, realizador_venta, tipo_operacion, estado,
	valor_reserva, porcentaje_honorarios_broker, porcentaje_honorarios_asesor,
	porcentaje_honorarios_asesor_adicional, porcentaje_punta_compradora, porcentaje_punta_vendedora,
	porcentaje_compartido, porcentaje_referido, porcentaje_franquicia, reparticion_honorarios_asesor,
	honorarios_broker, honorarios_asesor, user_uid, user_uid_adicional,
	punta_compradora, punta_vendedora, exclusiva, no_exclusiva, captacion_no_es_mia`

// TransactionStore persists transactions per owning user.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	logger.L.Debug("Fetching transactions from DB", "userID", userID)
	rows, err := s.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for userID %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		var teamID, opDate, listDate, resDate, address, house, realizedBy, primary, additional sql.NullString
		var buyer, seller, excl, nonExcl, notMine bool
		scanErr := rows.Scan(&tx.ID, &teamID, &opDate, &listDate, &resDate,
			&address, &house, &realizedBy, &tx.Type, &tx.Status,
			&tx.ReservationValue, &tx.BrokerFeePercent, &tx.AdvisorFeePercent,
			&tx.AdditionalAdvisorFeePercent, &tx.BuyerSidePercent, &tx.SellerSidePercent,
			&tx.SharedPercent, &tx.ReferralPercent, &tx.FranchiseOrBrokerPercent, &tx.AdvisorSplitPercent,
			&tx.BrokerFeeAmount, &tx.AdvisorFeeAmount, &primary, &additional,
			&buyer, &seller, &excl, &nonExcl, &notMine)
		if scanErr != nil {
			return nil, fmt.Errorf("error scanning transaction row for userID %s: %w", userID, scanErr)
		}
		tx.UserID = userID
		tx.TeamID = teamID.String
		tx.TransactionDate, tx.ListingDate, tx.ReservationDate = opDate.String, listDate.String, resDate.String
		tx.Address, tx.HouseNumber, tx.RealizedBy = address.String, house.String, realizedBy.String
		tx.PrimaryAdvisorID, tx.AdditionalAdvisorID = primary.String, additional.String
		tx.BuyerSide, tx.SellerSide = models.Flag(buyer), models.Flag(seller)
		tx.Exclusive, tx.NonExclusive, tx.ListingNotMine = models.Flag(excl), models.Flag(nonExcl), models.Flag(notMine)
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows for userID %s: %w", userID, err)
	}
	logger.L.Info("DB fetch complete.", "userID", userID, "transactionCount", len(transactions))
	return transactions, nil
}

// SaveTransaction inserts or replaces a transaction. A missing id is generated.
func (s *TransactionStore) SaveTransaction(ctx context.Context, userID string, tx models.Transaction) (models.Transaction, error) {
	if strings.TrimSpace(tx.ID) == "" {
		tx.ID = uuid.NewString()
	}
	tx.UserID = userID

	_, err := s.db.ExecContext(ctx, `INSERT INTO transactions (user_id, `+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET
			team_id = excluded.team_id,
			fecha_operacion = excluded.fecha_operacion,
			fecha_captacion = excluded.fecha_captacion,
			fecha_reserva = excluded.fecha_reserva,
			direccion_reserva = excluded.direccion_reserva,
			numero_casa = excluded.numero_casa,
			realizador_venta = excluded.realizador_venta,
			tipo_operacion = excluded.tipo_operacion,
			estado = excluded.estado,
			valor_reserva = excluded.valor_reserva,
			porcentaje_honorarios_broker = excluded.porcentaje_honorarios_broker,
			porcentaje_honorarios_asesor = excluded.porcentaje_honorarios_asesor,
			porcentaje_honorarios_asesor_adicional = excluded.porcentaje_honorarios_asesor_adicional,
			porcentaje_punta_compradora = excluded.porcentaje_punta_compradora,
			porcentaje_punta_vendedora = excluded.porcentaje_punta_vendedora,
			porcentaje_compartido = excluded.porcentaje_compartido,
			porcentaje_referido = excluded.porcentaje_referido,
			porcentaje_franquicia = excluded.porcentaje_franquicia,
			reparticion_honorarios_asesor = excluded.reparticion_honorarios_asesor,
			honorarios_broker = excluded.honorarios_broker,
			honorarios_asesor = excluded.honorarios_asesor,
			user_uid = excluded.user_uid,
			user_uid_adicional = excluded.user_uid_adicional,
			punta_compradora = excluded.punta_compradora,
			punta_vendedora = excluded.punta_vendedora,
			exclusiva = excluded.exclusiva,
			no_exclusiva = excluded.no_exclusiva,
			captacion_no_es_mia = excluded.captacion_no_es_mia,
			updated_at = CURRENT_TIMESTAMP`,
		userID, tx.ID, tx.TeamID, tx.TransactionDate, tx.ListingDate, tx.ReservationDate,
		tx.Address, tx.HouseNumber, tx.RealizedBy, string(tx.Type), string(tx.Status),
		tx.ReservationValue, tx.BrokerFeePercent, tx.AdvisorFeePercent,
		tx.AdditionalAdvisorFeePercent, tx.BuyerSidePercent, tx.SellerSidePercent,
		tx.SharedPercent, tx.ReferralPercent, tx.FranchiseOrBrokerPercent, tx.AdvisorSplitPercent,
		tx.BrokerFeeAmount, tx.AdvisorFeeAmount, tx.PrimaryAdvisorID, tx.AdditionalAdvisorID,
		bool(tx.BuyerSide), bool(tx.SellerSide), bool(tx.Exclusive), bool(tx.NonExclusive), bool(tx.ListingNotMine),
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error saving transaction %s for userID %s: %w", tx.ID, userID, err)
	}
	logger.L.Debug("Saved transaction", "userID", userID, "transactionID", tx.ID)
	return tx, nil
}

func (s *TransactionStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("error deleting transaction %s for userID %s: %w", id, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
