package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/control-stock/internal/application/auth"
	"github.com/jhoicas/control-stock/internal/application/inventory"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
)

// Console es la capa de presentación: una shell interactiva fina y
// reemplazable sobre los dos servicios. No contiene reglas de negocio;
// los servicios revalidan toda entrada por su cuenta.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	authUC      *auth.AuthUseCase
	inventoryUC *inventory.InventoryUseCase
}

// NewConsole construye la consola sobre los streams dados.
func NewConsole(in io.Reader, out io.Writer, authUC *auth.AuthUseCase, inventoryUC *inventory.InventoryUseCase) *Console {
	return &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		authUC:      authUC,
		inventoryUC: inventoryUC,
	}
}

// Run ejecuta el ciclo login -> menú hasta que el operador salga.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Controle de Estoque ===")
	for {
		session, ok := c.login()
		if !ok {
			return nil // EOF en el login: terminar
		}
		if session == nil {
			continue // credenciales inválidas: reintentar
		}
		if quit := c.mainMenu(ctx, session); quit {
			return nil
		}
		// "Sair" del menú vuelve a la pantalla de login, como la app original.
	}
}

// login pide credenciales una vez. Devuelve (nil, true) si fallaron,
// (session, true) si entraron y (nil, false) en EOF.
func (c *Console) login() (*auth.Session, bool) {
	username, ok := c.prompt("Usuário: ")
	if !ok {
		return nil, false
	}
	password, ok := c.prompt("Senha: ")
	if !ok {
		return nil, false
	}
	session, err := c.authUC.Authenticate(username, password)
	if err != nil {
		c.printError(err)
		return nil, true
	}
	fmt.Fprintf(c.out, "Bem-vindo, %s (%s)\n", session.Username, session.Role)
	return session, true
}

func (c *Console) mainMenu(ctx context.Context, session *auth.Session) bool {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1) Produtos")
		fmt.Fprintln(c.out, "2) Movimentação")
		fmt.Fprintln(c.out, "3) Histórico")
		if session.IsAdmin() {
			fmt.Fprintln(c.out, "4) Usuários")
		}
		fmt.Fprintln(c.out, "0) Sair")
		choice, ok := c.prompt("> ")
		if !ok {
			return true
		}
		switch choice {
		case "1":
			c.productsScreen(ctx, session)
		case "2":
			c.movementScreen(ctx, session)
		case "3":
			c.historyScreen()
		case "4":
			// La opción solo se muestra a administradores, pero el servicio
			// verifica el rol contra el token igualmente.
			c.registerUserScreen(session)
		case "0":
			return false
		}
	}
}

func (c *Console) productsScreen(ctx context.Context, session *auth.Session) {
	for {
		c.renderProducts()
		fmt.Fprintln(c.out, "n) novo  e) editar  x) excluir  v) voltar")
		choice, ok := c.prompt("> ")
		if !ok || choice == "v" {
			return
		}
		switch choice {
		case "n":
			c.registerProduct(ctx, session)
		case "e":
			c.editProduct(session)
		case "x":
			c.deleteProduct(ctx, session)
		}
	}
}

func (c *Console) renderProducts() {
	products, err := c.inventoryUC.ListProducts()
	if err != nil {
		c.printError(err)
		return
	}
	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNome\tEstoque\tMínimo\tStatus")
	for _, p := range products {
		status := p.Status
		if status == entity.StockStatusLow {
			status = fmt.Sprintf("ESTOQUE BAIXO (mín: %d)", p.MinimumQuantity)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.Quantity, p.MinimumQuantity, status)
	}
	_ = w.Flush()
}

func (c *Console) registerProduct(ctx context.Context, session *auth.Session) {
	in, ok := c.promptProductInput()
	if !ok {
		return
	}
	if _, err := c.inventoryUC.RegisterProduct(ctx, session, in); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "Produto cadastrado com sucesso!")
}

func (c *Console) editProduct(session *auth.Session) {
	id, ok := c.prompt("ID do produto: ")
	if !ok {
		return
	}
	in, ok := c.promptProductInput()
	if !ok {
		return
	}
	if err := c.inventoryUC.UpdateProduct(session, id, in); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "Produto atualizado com sucesso!")
}

func (c *Console) deleteProduct(ctx context.Context, session *auth.Session) {
	id, ok := c.prompt("ID do produto: ")
	if !ok {
		return
	}
	// Confirmación previa: responsabilidad de la presentación, no del servicio.
	confirm, ok := c.prompt("Excluir o produto e todas as suas movimentações? (s/n) ")
	if !ok || confirm != "s" {
		return
	}
	if err := c.inventoryUC.DeleteProduct(ctx, session, id); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "Produto excluído com sucesso!")
}

func (c *Console) promptProductInput() (inventory.ProductInput, bool) {
	name, ok := c.prompt("Nome: ")
	if !ok {
		return inventory.ProductInput{}, false
	}
	quantity, ok := c.promptInt("Quantidade: ")
	if !ok {
		return inventory.ProductInput{}, false
	}
	minimum, ok := c.promptInt("Quantidade mínima: ")
	if !ok {
		return inventory.ProductInput{}, false
	}
	return inventory.ProductInput{Name: name, Quantity: quantity, MinimumQuantity: minimum}, true
}

func (c *Console) movementScreen(ctx context.Context, session *auth.Session) {
	c.renderProducts()
	id, ok := c.prompt("ID do produto: ")
	if !ok {
		return
	}
	kind, ok := c.prompt("Tipo (entrada/saida): ")
	if !ok {
		return
	}
	amount, ok := c.promptInt("Quantidade: ")
	if !ok {
		return
	}
	newQty, err := c.inventoryUC.ProcessMovement(ctx, session, id, kind, amount)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Movimentação registrada: %s de %d unidades (estoque atual: %d)\n",
		entity.MovementLabel(kind), amount, newQty)
}

func (c *Console) historyScreen() {
	records, err := c.inventoryUC.ListMovementHistory()
	if err != nil {
		c.printError(err)
		return
	}
	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Data\tProduto\tTipo\tQuantidade\tUsuário")
	for _, m := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			m.Date.Format("2006-01-02 15:04:05"), m.ProductName, m.TypeLabel, m.Quantity, m.Username)
	}
	_ = w.Flush()
}

func (c *Console) registerUserScreen(session *auth.Session) {
	username, ok := c.prompt("Nome de usuário: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Senha: ")
	if !ok {
		return
	}
	role, ok := c.prompt("Perfil (Administrador/Comum): ")
	if !ok {
		return
	}
	if err := c.authUC.RegisterUser(session, username, password, role); err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "Usuário cadastrado com sucesso!")
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptInt repite hasta leer un entero. Es solo comodidad de captura;
// los servicios revalidan los rangos por su cuenta.
func (c *Console) promptInt(label string) (int, bool) {
	for {
		text, ok := c.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, true
		}
		fmt.Fprintln(c.out, "Digite um número inteiro.")
	}
}

// printError traduce el error de dominio a un mensaje para el operador.
// La pantalla actual queda intacta: ningún commit parcial es visible.
func (c *Console) printError(err error) {
	var msg string
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		msg = "Credenciais inválidas!"
	case errors.Is(err, domain.ErrForbidden):
		msg = "Operação permitida apenas para administradores."
	case errors.Is(err, domain.ErrInvalidInput):
		msg = "Preencha todos os campos corretamente!"
	case errors.Is(err, domain.ErrDuplicate):
		msg = "Já existe um registro com este nome!"
	case errors.Is(err, domain.ErrNotFound):
		msg = "Registro não encontrado."
	case errors.Is(err, domain.ErrInsufficientStock):
		msg = "Estoque insuficiente!"
	case errors.Is(err, domain.ErrConstraint):
		msg = "Violação de integridade no banco de dados."
	case errors.Is(err, domain.ErrStoreUnavailable):
		msg = "Banco de dados indisponível. Operação cancelada."
	default:
		msg = "Falha na operação: " + err.Error()
	}
	fmt.Fprintln(c.out, "ERRO:", msg)
}
