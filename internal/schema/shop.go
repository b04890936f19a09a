package schema

import (
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// ShopTables describes the shop tables and their foreign keys
func ShopTables() []models.TableSchema {
	return []models.TableSchema{
		{Name: "fornecedores", Columns: []string{"ID_Fornecedor", "Nome_Fornecedor", "Contacto_Email"}},
		{
			Name:    "produtos",
			Columns: []string{"ID_Produto", "Nome_Produto", "Preco_Base", "ID_Fornecedor"},
			ForeignKeys: []models.ForeignKey{
				{Table: "produtos", Column: "ID_Fornecedor", ReferencedTable: "fornecedores", ReferencedColumn: "ID_Fornecedor", ConstraintName: "fk_produtos_fornecedores"},
			},
		},
		{Name: "clientes", Columns: []string{"Email_Cliente", "Nome_Cliente", "Rua", "Localidade", "Codigo_Postal"}},
		{
			Name:    "encomendas",
			Columns: []string{"Num_Encomenda", "Data", "Email_Cliente"},
			ForeignKeys: []models.ForeignKey{
				{Table: "encomendas", Column: "Email_Cliente", ReferencedTable: "clientes", ReferencedColumn: "Email_Cliente", ConstraintName: "fk_encomendas_clientes"},
			},
		},
		{
			Name:    "detalhes_venda",
			Columns: []string{"Num_Encomenda", "ID_Produto", "Tamanho", "Quantidade", "Preco_Praticado"},
			ForeignKeys: []models.ForeignKey{
				{Table: "detalhes_venda", Column: "Num_Encomenda", ReferencedTable: "encomendas", ReferencedColumn: "Num_Encomenda", ConstraintName: "fk_dv_encomendas"},
				{Table: "detalhes_venda", Column: "ID_Produto", ReferencedTable: "produtos", ReferencedColumn: "ID_Produto", ConstraintName: "fk_dv_produtos"},
			},
		},
	}
}

// ShopDDL returns the statements creating the shop database and its tables
func ShopDDL(database string) ([]string, error) {
	return ddl(database, `CREATE TABLE IF NOT EXISTS %[1]s.fornecedores (
  ID_Fornecedor   INT          NOT NULL,
  Nome_Fornecedor VARCHAR(100) NOT NULL,
  Contacto_Email  VARCHAR(100) NOT NULL,
  PRIMARY KEY (ID_Fornecedor),
  UNIQUE KEY uq_fornecedores_email (Contacto_Email),
  UNIQUE KEY uq_fornecedores_nome  (Nome_Fornecedor)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.produtos (
  ID_Produto     INT           NOT NULL,
  Nome_Produto   VARCHAR(120)  NOT NULL,
  Preco_Base     DECIMAL(10,2) NOT NULL,
  ID_Fornecedor  INT           NOT NULL,
  PRIMARY KEY (ID_Produto),
  KEY idx_produtos_fornecedor (ID_Fornecedor),
  KEY idx_produtos_preco (Preco_Base),
  CONSTRAINT fk_produtos_fornecedores
    FOREIGN KEY (ID_Fornecedor)
    REFERENCES %[1]s.fornecedores (ID_Fornecedor)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.clientes (
  Email_Cliente  VARCHAR(100) NOT NULL,
  Nome_Cliente   VARCHAR(120) NOT NULL,
  Rua            VARCHAR(150) NOT NULL,
  Localidade     VARCHAR(80)  NOT NULL,
  Codigo_Postal  VARCHAR(20)  NOT NULL,
  PRIMARY KEY (Email_Cliente)
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.encomendas (
  Num_Encomenda  VARCHAR(30)  NOT NULL,
  Data           DATE         NOT NULL,
  Email_Cliente  VARCHAR(100) NOT NULL,
  PRIMARY KEY (Num_Encomenda),
  KEY idx_encomendas_data (Data),
  KEY idx_encomendas_cliente (Email_Cliente),
  CONSTRAINT fk_encomendas_clientes
    FOREIGN KEY (Email_Cliente)
    REFERENCES %[1]s.clientes (Email_Cliente)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS %[1]s.detalhes_venda (
  Num_Encomenda   VARCHAR(30)   NOT NULL,
  ID_Produto      INT           NOT NULL,
  Tamanho         VARCHAR(10)   NOT NULL,
  Quantidade      INT           NOT NULL,
  Preco_Praticado DECIMAL(10,2) NOT NULL,
  PRIMARY KEY (Num_Encomenda, ID_Produto, Tamanho),
  KEY idx_dv_produto (ID_Produto),
  CONSTRAINT fk_dv_encomendas
    FOREIGN KEY (Num_Encomenda)
    REFERENCES %[1]s.encomendas (Num_Encomenda)
    ON UPDATE CASCADE
    ON DELETE CASCADE,
  CONSTRAINT fk_dv_produtos
    FOREIGN KEY (ID_Produto)
    REFERENCES %[1]s.produtos (ID_Produto)
    ON UPDATE CASCADE
    ON DELETE RESTRICT
) ENGINE=InnoDB`)
}

// ShopDataset turns generated shop data into insertable rows
func ShopDataset(database string, data *models.ShopData) (*models.Dataset, error) {
	db, err := DatabaseName(database)
	if err != nil {
		return nil, err
	}
	stmts, err := ShopDDL(db)
	if err != nil {
		return nil, err
	}
	tables := ShopTables()

	suppliers := make([][]interface{}, 0, len(data.Suppliers))
	for _, s := range data.Suppliers {
		suppliers = append(suppliers, []interface{}{s.ID, s.Name, s.Email})
	}
	products := make([][]interface{}, 0, len(data.Products))
	for _, p := range data.Products {
		products = append(products, []interface{}{p.ID, p.Name, p.BasePrice.StringFixed(2), p.SupplierID})
	}
	clients := make([][]interface{}, 0, len(data.Clients))
	for _, c := range data.Clients {
		clients = append(clients, []interface{}{c.Email, c.Name, c.Street, c.Locality, c.PostalCode})
	}
	orders := make([][]interface{}, 0, len(data.Orders))
	for _, o := range data.Orders {
		orders = append(orders, []interface{}{o.Number, o.Date, o.ClientEmail})
	}
	lines := make([][]interface{}, 0, len(data.Lines))
	for _, l := range data.Lines {
		lines = append(lines, []interface{}{l.OrderNumber, l.ProductID, l.Size, l.Quantity, l.PracticedPrice.StringFixed(2)})
	}

	return &models.Dataset{
		Domain:   Shop,
		Database: db,
		DDL:      stmts,
		Tables: []models.TableData{
			{Schema: tables[0], Rows: suppliers},
			{Schema: tables[1], Rows: products},
			{Schema: tables[2], Rows: clients},
			{Schema: tables[3], Rows: orders},
			{Schema: tables[4], Rows: lines},
		},
	}, nil
}
