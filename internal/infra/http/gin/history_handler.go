package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	HistoryApp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/history"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
)

type HistoryHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h HistoryHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	query := HistoryApp.ListHistoryQuery{RenterID: p.ID}
	result, err := queries.Ask[HistoryApp.ListHistoryQuery, HistoryApp.Collection](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HistoryHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	cmd := HistoryApp.DeleteHistoryCommand{
		RenterID:  p.ID,
		RecordKey: c.Param("key"),
	}
	result, err := commands.Dispatch[HistoryApp.DeleteHistoryCommand, *HistoryApp.DeleteHistoryResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ HistoryHTTP = HistoryHandler{}
