package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/mcp/domain"
)

func registerTools(mcpServer *mcp.Server, accounts domain.Accounts, balances domain.Balances, trading domain.Trading, defaultAccount string) {
	mcp.AddTool(mcpServer, domain.TokenInfoTool(), domain.TokenInfoHandler(trading))
	mcp.AddTool(mcpServer, domain.CreateTokenTool(), domain.CreateTokenHandler(trading, defaultAccount))
	mcp.AddTool(mcpServer, domain.BuyTokenTool(), domain.BuyTokenHandler(trading, defaultAccount))
	mcp.AddTool(mcpServer, domain.SellTokenTool(), domain.SellTokenHandler(trading, defaultAccount))
	mcp.AddTool(mcpServer, domain.ListAccountsTool(), domain.ListAccountsHandler(accounts))
	mcp.AddTool(mcpServer, domain.AccountBalanceTool(), domain.AccountBalanceHandler(accounts, balances, defaultAccount))
	mcp.AddTool(mcpServer, domain.TokenBalanceTool(), domain.TokenBalanceHandler(accounts, balances, defaultAccount))
}

// registerResources registers readable MCP resources.
func registerResources(mcpServer *mcp.Server, accounts domain.Accounts) {
	mcpServer.AddResource(domain.AccountListResource(), domain.AccountListResourceHandler(accounts))
}
