package main

// @title           La Tostadora API
// @version         1.0
// @description     API de caixa, estoque e relatórios da cafeteria La Tostadora
// @description     Vendas fiado, pagamentos parciais, compras e consumo interno alteram o estoque
// @description     e o saldo dos clientes. O documento pode ser sincronizado por código de 6 caracteres.

// @contact.name   La Tostadora
// @contact.url    https://github.com/hugohenrick/la-tostadora

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
